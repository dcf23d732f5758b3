package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panjf2000/ants/v2"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqbot/internal/bootstrap"
	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
	"github.com/yanqian/faqbot/internal/infra/corpussource"
	"github.com/yanqian/faqbot/internal/infra/corpussync"
	mcpiface "github.com/yanqian/faqbot/internal/interface/mcp"
)

var version = "dev"

func provideFAQConfig(cfg *config.Config) faq.Config {
	threshold := cfg.Matcher.Threshold
	return faq.Config{
		Threshold:         &threshold,
		ParallelThreshold: cfg.Matcher.ParallelThreshold,
		ReloadTimeout:     cfg.Corpus.LoadTimeout,
	}
}

func provideMatcherPool(cfg *config.Config, logger *slog.Logger) (*ants.Pool, func(), error) {
	if cfg.Matcher.Workers <= 0 {
		logger.Info("matcher worker pool disabled, scoring sequentially")
		return nil, func() {}, nil
	}
	pool, err := ants.NewPool(cfg.Matcher.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("create matcher pool: %w", err)
	}
	return pool, pool.Release, nil
}

func provideCorpusSource(cfg *config.Config, logger *slog.Logger) (faq.CorpusSource, func(), error) {
	noop := func() {}
	switch cfg.Corpus.Source {
	case config.SourcePostgres:
		pool, err := newPostgresPool(cfg.Corpus.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("faq corpus postgres source enabled", "table", cfg.Corpus.Postgres.Table)
		src := corpussource.NewPostgresSource(pool, cfg.Corpus.Postgres.Table)
		return src, src.Close, nil
	case config.SourceObjectStore:
		s := cfg.Corpus.ObjectStore
		src, err := corpussource.NewObjectSource(corpussource.ObjectSourceOptions{
			Endpoint:  s.Endpoint,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			Bucket:    s.Bucket,
			Region:    s.Region,
			Key:       s.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("faq corpus object storage source enabled", "bucket", s.Bucket, "key", s.Key)
		return src, noop, nil
	case config.SourceValkey:
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid valkey configuration: %w", err)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			return nil, nil, fmt.Errorf("create valkey client: %w", err)
		}
		logger.Info("faq corpus valkey source enabled", "addr", cfg.Corpus.Valkey.Addr, "key", cfg.Corpus.Valkey.Key)
		src := corpussource.NewValkeySource(client, cfg.Corpus.Valkey.Key)
		return src, src.Close, nil
	default:
		logger.Info("faq corpus file source enabled", "path", cfg.Corpus.Path)
		return corpussource.NewFileSource(cfg.Corpus.Path), noop, nil
	}
}

func newPostgresPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Corpus.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Corpus.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Corpus.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

// provideLoader performs the initial load. The app refuses to start without a
// valid corpus.
func provideLoader(cfg faq.Config, source faq.CorpusSource, catalog *faq.Catalog, pool *ants.Pool, logger *slog.Logger) (*faq.Loader, error) {
	loader := faq.NewLoader(cfg, source, catalog, pool, logger)
	if err := loader.Reload(context.Background()); err != nil {
		return nil, fmt.Errorf("initial corpus load: %w", err)
	}
	return loader, nil
}

func provideMCPServer(svc faq.Service, logger *slog.Logger) *mcpiface.Server {
	return mcpiface.NewServer(svc, version, logger)
}

func provideWorkers(cfg *config.Config, loader *faq.Loader, mcpServer *mcpiface.Server, logger *slog.Logger) []bootstrap.Worker {
	var workers []bootstrap.Worker
	if cfg.Corpus.WatchFile() {
		workers = append(workers, corpussync.NewWatcher(cfg.Corpus.Path, cfg.Corpus.WatchDebounce, loader, logger))
	}
	if cfg.Corpus.RefreshInterval > 0 {
		workers = append(workers, corpussync.NewPoller(cfg.Corpus.RefreshInterval, loader, logger))
	}
	if cfg.MCP.Enabled {
		workers = append(workers, mcpiface.NewSSEServer(mcpServer, cfg.MCP.Address, cfg.MCP.BaseURL, logger))
	}
	return workers
}
