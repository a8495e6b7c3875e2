package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/eiel-forms/internal/domain"
)

// processMunicipality fetches, renders and writes both forms of one
// municipality. It returns the paths written so far even on error.
func (p *Pipeline) processMunicipality(ctx context.Context, code string) ([]string, error) {
	m := domain.NewMunicipality(code, p.names)

	deposits := fetchOr(p, "deposits", m.Padded, func() ([]domain.Deposit, error) {
		return p.source.Deposits(ctx, m.Code)
	}, []domain.Deposit{})
	if deposits == nil {
		deposits = []domain.Deposit{}
	}
	depositsJSON, err := domain.EncodeJSON(deposits)
	if err != nil {
		return nil, fmt.Errorf("deposits of %s: %w", m.Padded, err)
	}

	works := fetchOr(p, "works", m.Padded, func() ([]domain.Work, error) {
		return p.source.Works(ctx, m.Code)
	}, []domain.Work{})
	if works == nil {
		works = []domain.Work{}
	}
	worksJSON, err := domain.EncodeJSON(works)
	if err != nil {
		return nil, fmt.Errorf("works of %s: %w", m.Padded, err)
	}

	var files []string

	water, err := p.renderer.RenderWater(m, depositsJSON)
	if err != nil {
		return files, err
	}
	path, err := p.write(m.WaterFile(), water)
	if err != nil {
		return files, err
	}
	files = append(files, path)

	worksDoc, err := p.renderer.RenderWorks(m, works, worksJSON)
	if err != nil {
		return files, err
	}
	path, err = p.write(m.WorksFile(), worksDoc)
	if err != nil {
		return files, err
	}
	files = append(files, path)

	p.metrics.MunicipalitiesProcessed.Inc()
	p.notify(ctx, domain.FormsGenerated{
		Mun:         m.Padded,
		Display:     m.Display,
		Files:       files,
		Deposits:    len(deposits),
		Works:       len(works),
		GeneratedAt: p.clock.Now().UTC(),
	})
	return files, nil
}

func (p *Pipeline) write(name, content string) (string, error) {
	path, err := p.sink.Write(name, content)
	if err != nil {
		return "", err
	}
	p.metrics.FilesWritten.Inc()
	p.logger.Info("generated", "path", path)
	return path, nil
}

// notify publishes best-effort: the forms are already on disk.
func (p *Pipeline) notify(ctx context.Context, event domain.FormsGenerated) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, event); err != nil {
		p.metrics.NotifyFailures.Inc()
		p.logger.Warn("forms event not published", "mun", event.Mun, "error", err)
	}
}
