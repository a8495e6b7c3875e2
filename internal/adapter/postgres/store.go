package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/couchcryptid/eiel-forms/internal/config"
	"github.com/couchcryptid/eiel-forms/internal/domain"
)

// Querier is the subset of *pgx.Conn the store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store runs the read-only EIEL queries over a single connection.
// It implements pipeline.Source.
type Store struct {
	q    Querier
	conn *pgx.Conn
}

// New wraps an existing querier. Close is a no-op for stores built this way.
func New(q Querier) *Store {
	return &Store{q: q}
}

// Connect opens the one connection used for the whole run.
func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	connCfg, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d/%s: %w", cfg.DBHost, cfg.DBPort, cfg.DBName, err)
	}
	return &Store{q: conn, conn: conn}, nil
}

// DSN builds a postgres URL from the configured connection parameters.
func DSN(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort)),
		Path:   "/" + cfg.DBName,
	}
	if cfg.DBClientEncoding != "" {
		u.RawQuery = url.Values{"client_encoding": {cfg.DBClientEncoding}}.Encode()
	}
	return u.String()
}

// Close releases the connection opened by Connect.
func (s *Store) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(ctx)
}

// Municipalities lists the province's municipality codes in the current phase, ascending.
func (s *Store) Municipalities(ctx context.Context) ([]string, error) {
	rows, err := s.q.Query(ctx, municipalitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("query municipalities: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var mun any
		if err := rows.Scan(&mun); err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		codes = append(codes, textValue(mun))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate municipalities: %w", err)
	}
	return codes, nil
}

// Deposits returns the municipality's water deposits in display order.
// Deposits without a survey row are included with an empty cleaning status.
func (s *Store) Deposits(ctx context.Context, mun string) ([]domain.Deposit, error) {
	rows, err := s.q.Query(ctx, depositsSQL, mun)
	if err != nil {
		return nil, fmt.Errorf("query deposits: %w", err)
	}
	defer rows.Close()

	deposits := []domain.Deposit{}
	for rows.Next() {
		var (
			nombre   *string
			limpieza any
		)
		if err := rows.Scan(nil, nil, &nombre, &limpieza); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		deposits = append(deposits, domain.Deposit{
			Nombre:   deref(nombre),
			Limpieza: textValue(limpieza),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposits: %w", err)
	}
	return deposits, nil
}

// Works returns the municipality's eligible works: unfinished projects first,
// then finished ones. The two rules never match the same row.
func (s *Store) Works(ctx context.Context, mun string) ([]domain.Work, error) {
	works := []domain.Work{}
	for _, stmt := range []string{worksUnfinishedSQL, worksFinishedSQL} {
		batch, err := s.queryWorks(ctx, stmt, mun)
		if err != nil {
			return nil, err
		}
		works = append(works, batch...)
	}
	return works, nil
}

func (s *Store) queryWorks(ctx context.Context, stmt, mun string) ([]domain.Work, error) {
	rows, err := s.q.Query(ctx, stmt, mun)
	if err != nil {
		return nil, fmt.Errorf("query works: %w", err)
	}
	defer rows.Close()

	var works []domain.Work
	for rows.Next() {
		var (
			nombre *string
			plan   *string
			cond   int
		)
		if err := rows.Scan(nil, nil, &nombre, &plan, &cond); err != nil {
			return nil, fmt.Errorf("scan work: %w", err)
		}
		// A NULL name becomes "", as for deposits; plan_obra keeps its null.
		works = append(works, domain.Work{
			Nombre:   deref(nombre),
			PlanObra: plan,
			Cond:     domain.WorkCondition(cond),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate works: %w", err)
	}
	return works, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// textValue renders a scanned column as text; NULL becomes "".
func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
