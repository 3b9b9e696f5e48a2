package history

import (
	"context"
	"errors"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
)

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrRecordNotFound  = errors.New("history record not found")
)

// Store is the durable risk-history collection. Records are ordered by
// insertion and carry an immutable id assigned at append time; deletion by id
// is the stable path, DeleteAt is the positional operation it replaces.
// Implementations serialize writers themselves.
type Store interface {
	// Append persists the record, assigning its id and timestamp when unset,
	// and returns the stored form. inputs is an optional snapshot of the
	// normalized features that produced the row.
	Append(ctx context.Context, record models.HistoryRecord, inputs map[string]interface{}) (models.HistoryRecord, error)

	// List returns all records oldest first; an absent store yields an empty
	// slice, not an error.
	List(ctx context.Context) ([]models.HistoryRecord, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error

	// DeleteAt removes the record at the zero-based position; subsequent rows
	// shift down by one.
	DeleteAt(ctx context.Context, index int) error

	// Clear removes every record and the store itself where applicable.
	Clear(ctx context.Context) error
}
