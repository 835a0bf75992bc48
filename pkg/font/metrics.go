package font

import "github.com/zeromicro/go-zero/core/metric"

var (
	catalogFetches = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_webfonts",
		Subsystem: "catalog",
		Name:      "fetches_total",
		Help:      "Catalog fetches by result",
		Labels:    []string{"result"},
	})

	downloads = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_webfonts",
		Subsystem: "archive",
		Name:      "downloads_total",
		Help:      "Font archive downloads by result",
		Labels:    []string{"result"},
	})

	downloadDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_webfonts",
		Subsystem: "archive",
		Name:      "duration_seconds",
		Help:      "Font archive download and extraction duration in seconds",
		Labels:    []string{"font"},
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	facesAdded = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_webfonts",
		Subsystem: "stylesheet",
		Name:      "faces_added_total",
		Help:      "Font-face blocks written to stylesheets",
		Labels:    []string{"family"},
	})
)
