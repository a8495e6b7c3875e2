package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eiel-forms/internal/domain"
	"github.com/couchcryptid/eiel-forms/internal/observability"
)

// Source reads municipality, deposit and works records.
type Source interface {
	Municipalities(ctx context.Context) ([]string, error)
	Deposits(ctx context.Context, mun string) ([]domain.Deposit, error)
	Works(ctx context.Context, mun string) ([]domain.Work, error)
}

// Renderer produces the two form documents of a municipality.
type Renderer interface {
	RenderWater(m domain.Municipality, depositsJSON string) (string, error)
	RenderWorks(m domain.Municipality, works []domain.Work, worksJSON string) (string, error)
}

// Sink stores a rendered document under a bare filename and returns its path.
type Sink interface {
	Write(name, content string) (string, error)
}

// Notifier announces a municipality whose forms were written.
type Notifier interface {
	Notify(ctx context.Context, event domain.FormsGenerated) error
}

// Summary describes a finished run.
type Summary struct {
	Municipalities int
	Files          []string
	QueryFailures  int
	Duration       time.Duration
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithNotifier publishes an event after each municipality.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithClock replaces the real clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// Pipeline runs the extract-render-write sequence once over every municipality.
type Pipeline struct {
	source   Source
	renderer Renderer
	sink     Sink
	notifier Notifier
	names    map[string]string
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock

	failures int
}

// New creates a Pipeline. names maps padded codes to display names and may be nil.
func New(src Source, r Renderer, sink Sink, names map[string]string, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:   src,
		renderer: r,
		sink:     sink,
		names:    names,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run generates the forms of every municipality in list order. Query failures
// are logged and rendered as empty lists; render and write failures stop the
// run and are returned.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := p.clock.Now()
	p.failures = 0

	codes := fetchOr(p, "municipalities", "", func() ([]string, error) {
		return p.source.Municipalities(ctx)
	}, []string{})
	p.logger.Info("municipalities found", "count", len(codes), "codes", codes)

	summary := Summary{}
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return p.finish(summary, start), fmt.Errorf("run interrupted: %w", err)
		}
		files, err := p.processMunicipality(ctx, code)
		summary.Files = append(summary.Files, files...)
		if err != nil {
			return p.finish(summary, start), err
		}
		summary.Municipalities++
	}

	summary = p.finish(summary, start)
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("run complete",
		"municipalities", summary.Municipalities,
		"files", len(summary.Files),
		"query_failures", summary.QueryFailures,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (p *Pipeline) finish(s Summary, start time.Time) Summary {
	s.QueryFailures = p.failures
	s.Duration = p.clock.Since(start)
	p.metrics.RunDuration.Set(s.Duration.Seconds())
	return s
}
