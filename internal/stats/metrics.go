package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unknownFields counts observations whose label has no rule and is not on the
// ignore list. A steady climb here means the wiki schema drifted.
var unknownFields = promauto.NewCounter(prometheus.CounterOpts{
	Name: "champstats_unknown_fields_total",
	Help: "The total number of stat panel fields with no extraction rule.",
})
