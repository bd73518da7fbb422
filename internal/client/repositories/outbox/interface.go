package outbox

import (
	"context"

	"github.com/dmitrijs2005/fieldshift/internal/client/models"
)

// Repository is the durable queue of writes not yet acknowledged by the
// remote store. Mutations are replayed in FIFO order and removed only after
// confirmed application.
type Repository interface {
	// Enqueue assigns an id and CreatedAt and appends m to the tail. For
	// kinds with a dedup key (check-in, check-out, note submit, status
	// change) an existing row for the same (session, kind) is updated in
	// place, keeping its queue position but taking the newer payload and
	// timestamps.
	Enqueue(ctx context.Context, m *models.Mutation) error

	// List returns all pending mutations in FIFO order.
	List(ctx context.Context) ([]models.Mutation, error)

	// Dequeue removes a mutation by id. Reconciliation removes from the
	// head, but removal by arbitrary id is permitted.
	Dequeue(ctx context.Context, id string) error

	// Touch increments the retry counter. Informational only; retries are
	// not bounded.
	Touch(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)

	// Clear drops all pending mutations. Used on logout / full reset.
	Clear(ctx context.Context) error
}
