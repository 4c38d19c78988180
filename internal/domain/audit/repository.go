package audit

import "context"

// Repository persists extraction attempts. Writes are best-effort from the
// caller's point of view: a failed audit write must never fail the request.
type Repository interface {
	Record(ctx context.Context, attempt *Attempt) error
}
