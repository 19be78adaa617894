package repository

import (
	"context"

	"github.com/freerider/customer-registry/internal/models"
)

// CustomerRepository defines the interface for customer data access.
// Backends must agree on the contract: nil entities, nil slices and nil
// slice elements are invalid input and rejected before any write happens;
// Save overwrites wholesale (last write wins); DeleteByID on an absent id
// is a no-op; Delete matches the stored entity by value equality, not key.
type CustomerRepository interface {
	// Save inserts or overwrites the entry at the entity's id and
	// returns the stored entity.
	Save(ctx context.Context, customer *models.Customer) (*models.Customer, error)

	// SaveAll saves each entity in sequence. All elements are checked
	// before the first write.
	SaveAll(ctx context.Context, customers []*models.Customer) ([]*models.Customer, error)

	// ExistsByID reports whether an entity with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindByID retrieves an entity by id, or a not-found error.
	FindByID(ctx context.Context, id int64) (*models.Customer, error)

	// FindAll returns all entities in unspecified order. The result is
	// never nil; an empty store yields an empty slice.
	FindAll(ctx context.Context) ([]*models.Customer, error)

	// FindAllByID returns the entities whose id matched. Ids without a
	// match are silently omitted.
	FindAllByID(ctx context.Context, ids []int64) ([]*models.Customer, error)

	// Count returns the number of stored entities.
	Count(ctx context.Context) (int64, error)

	// DeleteByID removes the entry with the given id if present.
	DeleteByID(ctx context.Context, id int64) error

	// Delete removes the entry whose stored value equals the given
	// entity. Absent entities are a no-op.
	Delete(ctx context.Context, customer *models.Customer) error

	// DeleteAllByID removes each id in sequence.
	DeleteAllByID(ctx context.Context, ids []int64) error

	// DeleteAllEntities removes each entity in sequence, matching by
	// value equality like Delete.
	DeleteAllEntities(ctx context.Context, customers []*models.Customer) error

	// DeleteAll clears the entire collection.
	DeleteAll(ctx context.Context) error
}
