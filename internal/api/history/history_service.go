package history

import (
	"context"
	"log/slog"
	"strings"
)

const minQueryLength = 2

var _ Service = (*ServiceImpl)(nil)

// Service maintains the persisted search history. Every operation is
// fire-and-forget: storage errors are logged and swallowed, never surfaced
// to the caller.
type Service interface {
	Save(ctx context.Context, query string)
	Get(ctx context.Context) []string
	Clear(ctx context.Context)
	Remove(ctx context.Context, query string)
}

type ServiceImpl struct {
	logger     *slog.Logger
	repository Repository
	limit      int
}

func NewServiceImpl(repository Repository, limit int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repository: repository,
		limit:      limit,
	}
}

// Save prepends the query to the history, dropping any existing entry that
// differs only by case and truncating to the configured cap. Queries shorter
// than two characters are ignored.
func (s *ServiceImpl) Save(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minQueryLength {
		return
	}

	entries, err := s.repository.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load search history", slog.Any("error", err))
		entries = []string{}
	}

	updated := make([]string, 0, len(entries)+1)
	updated = append(updated, trimmed)
	lowered := strings.ToLower(trimmed)
	for _, e := range entries {
		if strings.ToLower(e) == lowered {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	if err := s.repository.Store(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to store search history", slog.Any("error", err))
	}
}

// Get returns the stored history, most recent first. Errors yield an empty
// list.
func (s *ServiceImpl) Get(ctx context.Context) []string {
	entries, err := s.repository.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load search history", slog.Any("error", err))
		return []string{}
	}
	return entries
}

func (s *ServiceImpl) Clear(ctx context.Context) {
	if err := s.repository.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear search history", slog.Any("error", err))
	}
}

// Remove deletes the case-insensitive exact match of query, if present.
func (s *ServiceImpl) Remove(ctx context.Context, query string) {
	entries, err := s.repository.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load search history", slog.Any("error", err))
		return
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	updated := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.ToLower(e) == lowered {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) == len(entries) {
		return
	}

	if err := s.repository.Store(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to store search history", slog.Any("error", err))
	}
}
