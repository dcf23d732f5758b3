package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
	"github.com/yanqian/faqbot/internal/infra/corpussource"
	"github.com/yanqian/faqbot/internal/infra/corpussync"
	mcpiface "github.com/yanqian/faqbot/internal/interface/mcp"
	apperrors "github.com/yanqian/faqbot/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideFAQConfig(t *testing.T) {
	cfg := &config.Config{
		Matcher: config.MatcherConfig{Threshold: 0.4, ParallelThreshold: 100},
		Corpus:  config.CorpusConfig{LoadTimeout: 3 * time.Second},
	}
	got := provideFAQConfig(cfg)
	require.NotNil(t, got.Threshold)
	require.Equal(t, 0.4, *got.Threshold)
	require.Equal(t, 100, got.ParallelThreshold)
	require.Equal(t, 3*time.Second, got.ReloadTimeout)

	got = provideFAQConfig(&config.Config{})
	require.NotNil(t, got.Threshold)
	require.Equal(t, 0.0, *got.Threshold)
}

func TestProvideMatcherPool(t *testing.T) {
	pool, cleanup, err := provideMatcherPool(&config.Config{}, testLogger())
	require.NoError(t, err)
	require.Nil(t, pool)
	cleanup()

	pool, cleanup, err = provideMatcherPool(&config.Config{Matcher: config.MatcherConfig{Workers: 2}}, testLogger())
	require.NoError(t, err)
	require.Equal(t, 2, pool.Cap())
	cleanup()
	require.True(t, pool.IsClosed())
}

func TestProvideCorpusSourceDefaultsToFile(t *testing.T) {
	cfg := &config.Config{Corpus: config.CorpusConfig{Source: config.SourceFile, Path: "configs/faqs.yaml"}}
	src, cleanup, err := provideCorpusSource(cfg, testLogger())
	require.NoError(t, err)
	defer cleanup()

	fileSrc, ok := src.(*corpussource.FileSource)
	require.True(t, ok)
	require.Equal(t, "configs/faqs.yaml", fileSrc.Path())
}

func TestBuildValkeyOptions(t *testing.T) {
	opt, err := buildValkeyOptions(&config.Config{Corpus: config.CorpusConfig{Valkey: config.ValkeyConfig{Addr: "localhost:6379"}}})
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = buildValkeyOptions(&config.Config{Corpus: config.CorpusConfig{Valkey: config.ValkeyConfig{Addr: "redis://cache:6380/0"}}})
	require.NoError(t, err)
	require.Equal(t, []string{"cache:6380"}, opt.InitAddress)
}

func TestProvideLoaderRejectsInvalidCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- question: \"   \"\n  answer: nothing\n"), 0o600))

	catalog := faq.NewCatalog()
	_, err := provideLoader(faq.Config{}, corpussource.NewFileSource(path), catalog, nil, testLogger())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeCorpusError))

	_, err = catalog.Matcher()
	require.ErrorIs(t, err, faq.ErrEmptyCorpus)
}

func TestProvideLoaderInstallsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- question: Where is the library?\n  answer: Block C.\n"), 0o600))

	catalog := faq.NewCatalog()
	_, err := provideLoader(faq.Config{}, corpussource.NewFileSource(path), catalog, nil, testLogger())
	require.NoError(t, err)

	m, err := catalog.Matcher()
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
}

func TestProvideWorkers(t *testing.T) {
	svc := faq.NewService(faq.NewCatalog(), testLogger())
	mcpServer := provideMCPServer(svc, testLogger())
	loader := faq.NewLoader(faq.Config{}, corpussource.NewFileSource("configs/faqs.yaml"), faq.NewCatalog(), nil, testLogger())

	require.Empty(t, provideWorkers(&config.Config{}, loader, mcpServer, testLogger()))

	cfg := &config.Config{
		Corpus: config.CorpusConfig{Source: config.SourceFile, Path: "configs/faqs.yaml", Watch: true, RefreshInterval: time.Minute},
		MCP:    config.MCPConfig{Enabled: true, Address: ":5001"},
	}
	workers := provideWorkers(cfg, loader, mcpServer, testLogger())
	require.Len(t, workers, 3)
	require.IsType(t, &corpussync.Watcher{}, workers[0])
	require.IsType(t, &corpussync.Poller{}, workers[1])
	require.IsType(t, &mcpiface.SSEServer{}, workers[2])

	cfg.Corpus.Source = config.SourceValkey
	workers = provideWorkers(cfg, loader, mcpServer, testLogger())
	require.Len(t, workers, 2)
	require.IsType(t, &corpussync.Poller{}, workers[0])
}
