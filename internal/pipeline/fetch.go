package pipeline

// fetchOr runs fetch and returns fallback when it fails. The failure is
// logged and counted but never propagated. mun may be empty when the query is
// not tied to a municipality.
func fetchOr[T any](p *Pipeline, query, mun string, fetch func() (T, error), fallback T) T {
	v, err := fetch()
	if err == nil {
		return v
	}

	p.failures++
	p.metrics.QueryFailures.WithLabelValues(query).Inc()

	attrs := []any{"query", query, "error", err}
	if mun != "" {
		attrs = append(attrs, "mun", mun)
	}
	p.logger.Warn("⚠ database error, using empty result", attrs...)
	return fallback
}
