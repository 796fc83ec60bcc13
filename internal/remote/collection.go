// Package remote defines the client-side contract for the jobs API
// collection. The server's copy of the collection is authoritative;
// everything above this interface works with snapshots of it.
package remote

import (
	"context"

	"github.com/affanabid/Hiro/internal/domain"
)

// Collection is the typed surface of one remote REST job collection.
// Every call is a single network round trip; implementations do not
// retry, cache, or back off, and report any failure as a
// *domain.TransportError. Implementations must be safe for concurrent
// use.
type Collection interface {
	// List fetches the full collection.
	List(ctx context.Context) ([]domain.JobRecord, error)

	// Create adds a new record; the server assigns the ID.
	Create(ctx context.Context, draft domain.JobDraft) (domain.JobRecord, error)

	// Get fetches a single record by ID.
	Get(ctx context.Context, id int64) (domain.JobRecord, error)

	// Update fully replaces the record with the given ID.
	Update(ctx context.Context, id int64, draft domain.JobDraft) (domain.JobRecord, error)

	// Patch replaces only the fields set on the patch.
	Patch(ctx context.Context, id int64, patch domain.JobPatch) (domain.JobRecord, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id int64) error
}
