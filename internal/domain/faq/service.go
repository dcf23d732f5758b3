package faq

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/faqbot/pkg/errors"
	"github.com/yanqian/faqbot/pkg/metrics"
)

// Service exposes FAQ matching to transports.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	FAQs(ctx context.Context) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
	Ready(ctx context.Context) error
}

type service struct {
	catalog  *Catalog
	counters *metrics.MatchCounters
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the FAQ domain.
func NewService(catalog *Catalog, logger *slog.Logger) Service {
	return &service{
		catalog:  catalog,
		counters: &metrics.MatchCounters{},
		logger:   logger.With("component", "faq.service"),
		now:      time.Now,
	}
}

func (s *service) Answer(_ context.Context, req Request) (Response, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "query cannot be empty", nil)
	}

	matcher, err := s.catalog.Matcher()
	if err != nil {
		return Response{}, wrapCorpusError(err)
	}

	start := s.now()
	result, err := matcher.FindBestMatch(query)
	if err != nil {
		return Response{}, wrapCorpusError(err)
	}
	s.counters.Observe(result.Found(), s.now().Sub(start))

	resp := Response{
		Query:           query,
		Confidence:      result.Score,
		MatchedQuestion: result.MatchedQuestion,
		Found:           result.Found(),
	}
	if result.Found() {
		resp.Answer = *result.Answer
		s.logger.Info("faq match found", "confidence", result.Score)
	} else {
		s.logger.Warn("faq match not found", "confidence", result.Score, "threshold", matcher.Threshold())
	}
	return resp, nil
}

func (s *service) FAQs(_ context.Context) ([]Entry, error) {
	matcher, err := s.catalog.Matcher()
	if err != nil {
		return nil, wrapCorpusError(err)
	}
	return matcher.AllFAQs(), nil
}

func (s *service) Stats(_ context.Context) (Stats, error) {
	matcher, err := s.catalog.Matcher()
	if err != nil {
		return Stats{}, wrapCorpusError(err)
	}
	counts := s.counters.Snapshot()
	source, loadedAt, installs := s.catalog.describe()
	return Stats{
		TotalFAQs:       matcher.Len(),
		Queries:         counts.Queries,
		Matches:         counts.Matches,
		Misses:          counts.Misses,
		AvgResponseMs:   counts.AvgResponseMs,
		CorpusSource:    source,
		CorpusLoadedAt:  loadedAt,
		CorpusSnapshots: installs,
	}, nil
}

func (s *service) Ready(_ context.Context) error {
	if _, err := s.catalog.Matcher(); err != nil {
		return wrapCorpusError(err)
	}
	return nil
}

func wrapCorpusError(err error) error {
	if errors.Is(err, ErrEmptyCorpus) {
		return apperrors.Wrap(apperrors.CodeCorpusError, "faq corpus unavailable", err)
	}
	return apperrors.Wrap(apperrors.CodeInternal, "faq lookup failed", err)
}
