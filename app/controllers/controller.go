// Package controllers holds the view controllers of the blog. A controller
// is mounted for one view, loads its posts through the services and
// exposes the view's operations. Controllers own no post data: every
// mutation goes to the shared post store and the controller keeps the
// record the store returned.
package controllers

import (
	"hackblog/app/metrics"
	"hackblog/app/models"

	"github.com/go-logr/logr"
)

// State is the lifecycle state of a controller.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateNotFound  State = "not_found"
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateEmpty     State = "empty"
)

// replacePost swaps every entry of list whose id matches updated.
// It reports whether any entry matched.
func replacePost(list []*models.Post, updated *models.Post) bool {
	found := false
	for i, p := range list {
		if p.ID == updated.ID {
			list[i] = updated
			found = true
		}
	}
	return found
}

func containsPost(list []*models.Post, id string) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}

// swallow logs a failed load the view does not surface.
func swallow(log logr.Logger, err error, operation, msg string, keysAndValues ...interface{}) {
	metrics.SourceErrors.WithLabelValues(operation).Inc()
	log.Error(err, msg, keysAndValues...)
}
