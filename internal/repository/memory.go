package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/freerider/customer-registry/internal/models"
)

// memoryRepository implements CustomerRepository with an in-process map.
// This is the reference backend; a single mutex covers every read-check-
// then-write sequence so concurrent requests see a consistent store.
type memoryRepository struct {
	mu        sync.RWMutex
	customers map[int64]*models.Customer
}

// NewMemoryRepository creates an empty in-memory customer repository
func NewMemoryRepository() CustomerRepository {
	return &memoryRepository{
		customers: make(map[int64]*models.Customer),
	}
}

// Save inserts or overwrites the entry at the entity's id
func (r *memoryRepository) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, models.ErrInvalidInput("customer must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[customer.ID] = customer
	return customer, nil
}

// SaveAll saves each entity in sequence, validating all elements first
func (r *memoryRepository) SaveAll(ctx context.Context, customers []*models.Customer) ([]*models.Customer, error) {
	if customers == nil {
		return nil, models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return nil, models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, customer := range customers {
		r.customers[customer.ID] = customer
	}
	return customers, nil
}

// ExistsByID reports whether an entity with the given id exists
func (r *memoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.customers[id]
	return ok, nil
}

// FindByID retrieves an entity by id
func (r *memoryRepository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	return customer, nil
}

// FindAll returns all entities in unspecified order, never nil
func (r *memoryRepository) FindAll(ctx context.Context) ([]*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

// FindAllByID returns the entities whose id matched, omitting misses
func (r *memoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]*models.Customer, error) {
	if ids == nil {
		return nil, models.ErrInvalidInput("ids must not be nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := []*models.Customer{}
	for _, id := range ids {
		if customer, ok := r.customers[id]; ok {
			customers = append(customers, customer)
		}
	}
	return customers, nil
}

// Count returns the number of stored entities
func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.customers)), nil
}

// DeleteByID removes the entry with the given id, no-op if absent
func (r *memoryRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, id)
	return nil
}

// Delete removes the entry whose stored value equals the given entity
func (r *memoryRepository) Delete(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return models.ErrInvalidInput("customer must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.customers[customer.ID]; ok && stored.Equal(customer) {
		delete(r.customers, customer.ID)
	}
	return nil
}

// DeleteAllByID removes each id in sequence, validating all elements first
func (r *memoryRepository) DeleteAllByID(ctx context.Context, ids []int64) error {
	if ids == nil {
		return models.ErrInvalidInput("ids must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.customers, id)
	}
	return nil
}

// DeleteAllEntities removes each entity in sequence by value equality
func (r *memoryRepository) DeleteAllEntities(ctx context.Context, customers []*models.Customer) error {
	if customers == nil {
		return models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, customer := range customers {
		if stored, ok := r.customers[customer.ID]; ok && stored.Equal(customer) {
			delete(r.customers, customer.ID)
		}
	}
	return nil
}

// DeleteAll clears the entire collection
func (r *memoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = make(map[int64]*models.Customer)
	return nil
}
