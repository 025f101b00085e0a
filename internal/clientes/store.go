package clientes

import (
	"context"
	"errors"
)

// ErrNotFound is returned by store lookups, updates and deletes when no row
// exists for the given id. It is distinct from driver failures so callers
// can tell "record absent" apart from "store unavailable".
var ErrNotFound = errors.New("cliente não encontrado")

// Store is the persistence contract for client records. Implementations live
// in internal/store and are injected into the service and the batch
// ingestor, so tests and the terminal tool can pick a different engine than
// the server.
//
// Stores never validate field contents; validation is the caller's job. Each
// method is one durable unit against the engine: it opens its own working
// session, commits before returning and never leaves the session open past
// the call. Concurrent callers rely on the engine's native locking.
type Store interface {
	// Create inserts a new record and returns the engine-assigned id.
	Create(ctx context.Context, c Cliente) (int64, error)

	// List returns all records in insertion order.
	List(ctx context.Context) ([]Cliente, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (Cliente, error)

	// SearchByName returns records whose name contains nomeParte. Match
	// case-sensitivity follows the engine's text semantics. An empty
	// nomeParte is not guaranteed to restrict the result.
	SearchByName(ctx context.Context, nomeParte string) ([]Cliente, error)

	// Update replaces every field of an existing record. Returns
	// ErrNotFound if the id is absent; the store is left unchanged.
	Update(ctx context.Context, c Cliente) error

	// Delete removes the record. Returns ErrNotFound if the id is absent,
	// including on a second delete of the same id.
	Delete(ctx context.Context, id int64) error

	// Close releases the engine's resources.
	Close() error
}
