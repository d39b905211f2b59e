package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// totalNavigations tracks individual page-load attempts, including retries.
	totalNavigations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "champstats_navigations_total",
		Help: "The total number of page navigation attempts.",
	})
	// totalRetries tracks navigation attempts after the first.
	totalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "champstats_navigation_retries_total",
		Help: "The total number of retried page navigations.",
	})
	// totalNavigationFailures tracks navigations that exhausted their budget.
	totalNavigationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "champstats_navigation_failures_total",
		Help: "The total number of navigations that failed all attempts.",
	})
	// totalChampionsCrawled tracks completed detail crawls.
	totalChampionsCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "champstats_champions_crawled_total",
		Help: "The total number of champion stat pages crawled and extracted.",
	})
)
