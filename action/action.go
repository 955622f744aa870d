// Package action holds the per-entity create/update/delete entry points.
// A dispatcher validates, maps the view model to its row shape, performs
// the single persistence write and fires cache invalidation. Failures are
// captured and returned as structured results; nothing is retried and no
// error crosses the boundary raw.
package action

import (
	"context"

	"github.com/islandguide/admin-api/invalidate"
)

// Result is the uniform outcome of a dispatcher call.
type Result struct {
	Success bool   `json:"success"`
	Id      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(id string) Result {
	return Result{Success: true, Id: id}
}

func fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// fireInvalidation publishes the affected view keys without waiting. The
// response may return before the caches drop their copies; that staleness
// window is accepted.
func fireInvalidation(ctx context.Context, inv invalidate.Invalidator, keys ...string) {
	go inv.Invalidate(context.WithoutCancel(ctx), keys...)
}
