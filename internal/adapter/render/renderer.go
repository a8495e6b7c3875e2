// Package render turns municipality data into the two HTML field forms using
// Jinja-style templates executed by pongo2.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/couchcryptid/eiel-forms/internal/domain"
)

// Option configures a Renderer before the templates are loaded.
type Option func(*options)

type options struct {
	globals pongo2.Context
}

// WithGlobals seeds values visible to every render, such as the external
// form endpoints.
func WithGlobals(data map[string]any) Option {
	return func(o *options) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			o.globals[key] = value
		}
	}
}

// Renderer holds the two preloaded form templates.
// It implements pipeline.Renderer.
type Renderer struct {
	water *pongo2.Template
	works *pongo2.Template
}

// New loads waterName and worksName from dir. A missing directory, missing
// file or template syntax error is returned immediately so the run can stop
// before touching the database. Output is HTML-escaped unless a template marks
// a value |safe.
func New(dir, waterName, worksName string, opts ...Option) (*Renderer, error) {
	o := &options{globals: pongo2.Context{}}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("render: template directory is required")
	}
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("render: template directory %s: %w", dir, err)
	}

	set := pongo2.NewSet("eiel-forms", loader)
	if set.Globals == nil {
		set.Globals = pongo2.Context{}
	}
	set.Globals.Update(o.globals)

	water, err := set.FromFile(waterName)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", waterName, err)
	}
	works, err := set.FromFile(worksName)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", worksName, err)
	}

	return &Renderer{water: water, works: works}, nil
}

// RenderWater renders the water deposits form.
func (r *Renderer) RenderWater(m domain.Municipality, depositsJSON string) (string, error) {
	out, err := r.water.Execute(pongo2.Context{
		"muni_code":      m.Padded,
		"muni_display":   m.Display,
		"depositos_json": depositsJSON,
	})
	if err != nil {
		return "", fmt.Errorf("render: water form %s: %w", m.Padded, err)
	}
	return out, nil
}

// RenderWorks renders the public works form. The raw works list is exposed as
// obras for server-side loops, alongside its JSON encoding.
func (r *Renderer) RenderWorks(m domain.Municipality, works []domain.Work, worksJSON string) (string, error) {
	out, err := r.works.Execute(pongo2.Context{
		"muni_code":    m.Padded,
		"muni_display": m.Display,
		"obras":        worksContext(works),
		"obras_json":   worksJSON,
	})
	if err != nil {
		return "", fmt.Errorf("render: works form %s: %w", m.Padded, err)
	}
	return out, nil
}

// worksContext exposes works under their JSON field names so templates can
// write obra.nombre, obra.plan_obra and obra.cond.
func worksContext(works []domain.Work) []map[string]any {
	out := make([]map[string]any, 0, len(works))
	for _, w := range works {
		var plan any
		if w.PlanObra != nil {
			plan = *w.PlanObra
		}
		out = append(out, map[string]any{
			"nombre":    w.Nombre,
			"plan_obra": plan,
			"cond":      int(w.Cond),
		})
	}
	return out
}
