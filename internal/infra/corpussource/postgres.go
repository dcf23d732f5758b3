package corpussource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// PostgresSource reads (question, answer) rows ordered by id.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource constructs the source. table must already be validated
// as a plain identifier.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	return &PostgresSource{pool: pool, table: table}
}

// Fetch implements faq.CorpusSource.
func (s *PostgresSource) Fetch(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.pool.Query(ctx, selectEntriesSQL(s.table))
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (faq.Entry, error) {
		var e faq.Entry
		err := row.Scan(&e.Question, &e.Answer)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	return entries, nil
}

// Describe implements faq.CorpusSource.
func (s *PostgresSource) Describe() string {
	return "postgres:" + s.table
}

// Close releases the pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

func selectEntriesSQL(table string) string {
	return fmt.Sprintf(`
		SELECT question, COALESCE(answer, '')
		FROM %s
		ORDER BY id
	`, pgx.Identifier{table}.Sanitize())
}

var _ faq.CorpusSource = (*PostgresSource)(nil)
