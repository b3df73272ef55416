package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	SearchRequestsTotal   metric.Int64Counter
	SearchResultsTotal    metric.Int64Counter
	SearchDurationSeconds metric.Float64Histogram
	ProviderFallbackTotal metric.Int64Counter
	CityLookupsTotal      metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wanderland")
		var err error
		m := &AppMetrics{}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"search_requests_total",
			metric.WithDescription("Total number of place searches started"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_requests_total: %v", err)
		}

		m.SearchResultsTotal, err = meter.Int64Counter(
			"search_results_total",
			metric.WithDescription("Total number of searches that produced a result"),
			metric.WithUnit("{result}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_results_total: %v", err)
		}

		m.SearchDurationSeconds, err = meter.Float64Histogram(
			"search_duration_seconds",
			metric.WithDescription("Duration of the place-search pipeline in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_duration_seconds: %v", err)
		}

		m.ProviderFallbackTotal, err = meter.Int64Counter(
			"provider_fallback_total",
			metric.WithDescription("Total number of times a fallback provider was consulted"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_fallback_total: %v", err)
		}

		m.CityLookupsTotal, err = meter.Int64Counter(
			"city_lookups_total",
			metric.WithDescription("Total number of city detail lookups"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create city_lookups_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
