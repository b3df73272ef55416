package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/emirduygulu/wanderland-api/app/observability/metrics"
	"github.com/emirduygulu/wanderland-api/internal/api/history"
	"github.com/emirduygulu/wanderland-api/internal/provider/wikipedia"
	"github.com/emirduygulu/wanderland-api/internal/types"
)

// sourceTag is the fixed origin tag carried by every result this pipeline
// produces.
const sourceTag = "wikipedia"

const minQueryLength = 2

var _ Service = (*ServiceImpl)(nil)

// EncyclopediaProvider resolves a title to a page summary.
type EncyclopediaProvider interface {
	Lookup(ctx context.Context, title, city string) (*wikipedia.Summary, error)
}

// ImageProvider resolves a place name to an image URL.
type ImageProvider interface {
	FindImage(ctx context.Context, place, city string) (string, error)
}

// Service is the free-text place search entry point.
type Service interface {
	SearchPlaces(ctx context.Context, query string, filters types.SearchFilters) ([]types.SearchResult, error)
}

// Options carries the pipeline tunables for the search orchestrator.
type Options struct {
	MinRelevanceScore int
	DefaultImageURL   string
}

type ServiceImpl struct {
	logger       *slog.Logger
	encyclopedia EncyclopediaProvider
	images       ImageProvider
	history      history.Service
	opts         Options
	httpClient   *http.Client
}

func NewServiceImpl(encyclopedia EncyclopediaProvider, images ImageProvider, historyService history.Service, opts Options, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		encyclopedia: encyclopedia,
		images:       images,
		history:      historyService,
		opts:         opts,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SearchPlaces resolves a free-text query to at most one enriched
// SearchResult. Single-best-match semantics: one encyclopedia lookup feeds
// the filter, scorer and enrichment stages, and a slice is returned only for
// interface stability. Every failure mode yields an empty slice, never an
// error.
func (s *ServiceImpl) SearchPlaces(ctx context.Context, query string, filters types.SearchFilters) ([]types.SearchResult, error) {
	ctx, span := otel.Tracer("SearchService").Start(ctx, "SearchPlaces", trace.WithAttributes(
		attribute.String("search.query", query),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "SearchPlaces"), slog.String("query", query))

	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minQueryLength {
		span.SetStatus(codes.Ok, "Query below minimum length")
		return []types.SearchResult{}, nil
	}

	start := time.Now()
	metrics.Get().SearchRequestsTotal.Add(ctx, 1)
	defer func() {
		metrics.Get().SearchDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	s.history.Save(ctx, trimmed)

	summary, err := s.encyclopedia.Lookup(ctx, trimmed, "")
	if err != nil {
		l.InfoContext(ctx, "encyclopedia lookup yielded nothing", slog.Any("error", err))
		span.SetStatus(codes.Ok, "No encyclopedia result")
		return []types.SearchResult{}, nil
	}

	if !IsTravelRelated(summary.Title, summary.Extract) {
		l.InfoContext(ctx, "result rejected as non-travel content", slog.String("title", summary.Title))
		span.SetStatus(codes.Ok, "Rejected by content filter")
		return []types.SearchResult{}, nil
	}

	score := RelevanceScore(summary.Title, trimmed)
	span.SetAttributes(attribute.Int("search.score", score))
	if score < s.opts.MinRelevanceScore {
		l.InfoContext(ctx, "result below relevance threshold",
			slog.String("title", summary.Title), slog.Int("score", score))
		span.SetStatus(codes.Ok, "Below relevance threshold")
		return []types.SearchResult{}, nil
	}

	imageURL := s.resolveValidatedImage(ctx, summary, trimmed)
	category, resultType := Classify(summary.Title, summary.Extract)

	extractLen := len([]rune(summary.Extract))
	turkish := summary.Language == "tr"
	rating := DeriveRating(score, extractLen, imageURL != "", summary.Coordinates != nil, turkish)
	popularity := DerivePopularity(score, extractLen, imageURL != "")

	result := types.SearchResult{
		ID:          resultID(trimmed),
		Name:        summary.Title,
		Description: summary.Extract,
		ImageURL:    imageURL,
		Category:    category,
		Location:    types.ResultLocation{Coordinates: summary.Coordinates},
		Rating:      rating,
		Popularity:  popularity,
		Type:        resultType,
		Source:      sourceTag,
		Score:       score,
		ExtraInfo: &types.ExtraInfo{
			SourceURL: summary.SourceURL,
			Language:  summary.Language,
		},
	}

	if !passesFilters(result, filters) {
		span.SetStatus(codes.Ok, "Excluded by caller filters")
		return []types.SearchResult{}, nil
	}

	metrics.Get().SearchResultsTotal.Add(ctx, 1)
	span.SetStatus(codes.Ok, "Search resolved")
	return []types.SearchResult{result}, nil
}

// resolveValidatedImage picks the result image: the encyclopedia's own image
// upgraded to its high-resolution variant when that URL actually resolves,
// then the image provider, then the fixed default stock image.
func (s *ServiceImpl) resolveValidatedImage(ctx context.Context, summary *wikipedia.Summary, query string) string {
	if summary.ImageURL != "" {
		hiRes := upgradeWikiImage(summary.ImageURL)
		if s.imageExists(ctx, hiRes) {
			return hiRes
		}
		if hiRes != summary.ImageURL && s.imageExists(ctx, summary.ImageURL) {
			return summary.ImageURL
		}
	}
	if imageURL, err := s.images.FindImage(ctx, query, ""); err == nil && imageURL != "" {
		return imageURL
	}
	return s.opts.DefaultImageURL
}

// upgradeWikiImage converts a Wikimedia thumbnail URL to the original file
// URL by stripping the /thumb/ segment and the sizing suffix.
func upgradeWikiImage(imageURL string) string {
	if !strings.Contains(imageURL, "/thumb/") {
		return imageURL
	}
	upgraded := strings.Replace(imageURL, "/thumb/", "/", 1)
	if idx := strings.LastIndex(upgraded, "/"); idx > 0 {
		last := upgraded[idx+1:]
		if strings.Contains(last, "px-") {
			upgraded = upgraded[:idx]
		}
	}
	return upgraded
}

// imageExists does a HEAD existence check.
func (s *ServiceImpl) imageExists(ctx context.Context, imageURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func passesFilters(result types.SearchResult, filters types.SearchFilters) bool {
	if !filters.AllowsType(result.Type) {
		return false
	}
	if filters.MinRating > 0 && result.Rating < filters.MinRating {
		return false
	}
	if len(filters.Categories) > 0 {
		matched := false
		for _, c := range filters.Categories {
			if strings.EqualFold(c, result.Category) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// resultID derives a stable identifier from the normalized query text.
func resultID(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("wanderland://search/"+normalized)).String()
}
