// Package metrics defines the prometheus collectors of the blog.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hackblog"

var (
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Like toggles applied to the post store, by direction.",
	}, []string{"direction"})

	CommentsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_added_total",
		Help:      "Comments appended to posts, by the surface they came from.",
	}, []string{"via"})

	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_errors_total",
		Help:      "Failed data source calls swallowed by the controllers.",
	}, []string{"operation"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
