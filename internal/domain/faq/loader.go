package faq

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	apperrors "github.com/yanqian/faqbot/pkg/errors"
)

// Loader builds matchers from a CorpusSource and installs them in a Catalog.
type Loader struct {
	cfg     Config
	source  CorpusSource
	catalog *Catalog
	pool    *ants.Pool
	logger  *slog.Logger
	now     func() time.Time
}

// NewLoader wires a loader. pool may be nil, in which case scoring is sequential.
func NewLoader(cfg Config, source CorpusSource, catalog *Catalog, pool *ants.Pool, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:     cfg,
		source:  source,
		catalog: catalog,
		pool:    pool,
		logger:  logger.With("component", "faq.loader", "source", source.Describe()),
		now:     time.Now,
	}
}

// Reload fetches the corpus and installs a fresh snapshot. The previous
// snapshot stays in place when any step fails.
func (l *Loader) Reload(ctx context.Context) error {
	if l.cfg.ReloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.ReloadTimeout)
		defer cancel()
	}

	entries, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Error("corpus fetch failed", "error", err)
		return apperrors.Wrap(apperrors.CodeSourceError, "failed to fetch corpus", err)
	}
	corpus, err := Load(entries)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			l.logger.Error("corpus rejected", "index", loadErr.Index, "reason", loadErr.Reason)
		}
		return apperrors.Wrap(apperrors.CodeCorpusError, "invalid corpus", err)
	}

	opts := []MatcherOption{WithThreshold(l.threshold())}
	if l.pool != nil {
		opts = append(opts, WithPool(l.pool, l.cfg.ParallelThreshold))
	}
	l.catalog.Install(NewMatcher(corpus, opts...), l.source.Describe(), l.now())
	l.logger.Info("corpus snapshot installed", "entries", corpus.Len())
	return nil
}

func (l *Loader) threshold() float64 {
	if l.cfg.Threshold != nil {
		return *l.cfg.Threshold
	}
	return DefaultThreshold
}
