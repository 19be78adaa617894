package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/freerider/customer-registry/internal/models"
)

func newTestCustomer(id int64, first, last string, contacts ...string) *models.Customer {
	return &models.Customer{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Contacts:  contacts,
	}
}

func TestMemoryRepository_SaveAndFindByID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	customer := newTestCustomer(1, "Jo", "Doe", "jo@example.com")

	saved, err := repo.Save(ctx, customer)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved != customer {
		t.Errorf("Save() returned %+v, want the stored entity", saved)
	}

	found, err := repo.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !found.Equal(customer) {
		t.Errorf("FindByID() = %+v, want %+v", found, customer)
	}
}

func TestMemoryRepository_SaveOverwrites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Save(ctx, newTestCustomer(7, "Jo", "Doe")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := repo.Save(ctx, newTestCustomer(7, "Jane", "Roe")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(ctx, 7)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.LastName != "Roe" {
		t.Errorf("FindByID() LastName = %q, want %q (last write wins)", found.LastName, "Roe")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestMemoryRepository_SaveNil(t *testing.T) {
	repo := NewMemoryRepository()

	if _, err := repo.Save(context.Background(), nil); err == nil {
		t.Fatal("Save(nil) error = nil, want invalid input error")
	}
}

func TestMemoryRepository_SaveAll_NilElementBlocksAllWrites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	customers := []*models.Customer{
		newTestCustomer(1, "Jo", "Doe"),
		nil,
		newTestCustomer(2, "Jane", "Roe"),
	}

	if _, err := repo.SaveAll(ctx, customers); err == nil {
		t.Fatal("SaveAll() error = nil, want invalid input error")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d after rejected SaveAll, want 0", count)
	}
}

func TestMemoryRepository_ExistsByIDLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	exists, err := repo.ExistsByID(ctx, 3)
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if exists {
		t.Error("ExistsByID() = true for never-saved id, want false")
	}

	if _, err := repo.Save(ctx, newTestCustomer(3, "Jo", "Doe")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, _ = repo.ExistsByID(ctx, 3)
	if !exists {
		t.Error("ExistsByID() = false after Save, want true")
	}

	if err := repo.DeleteByID(ctx, 3); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}

	exists, _ = repo.ExistsByID(ctx, 3)
	if exists {
		t.Error("ExistsByID() = true after DeleteByID, want false")
	}
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepository_FindAll_EmptyIsNotNil(t *testing.T) {
	repo := NewMemoryRepository()

	customers, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if customers == nil {
		t.Fatal("FindAll() = nil, want empty slice")
	}
	if len(customers) != 0 {
		t.Errorf("FindAll() returned %d customers, want 0", len(customers))
	}
}

func TestMemoryRepository_FindAllByID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for id := int64(0); id < 3; id++ {
		if _, err := repo.Save(ctx, newTestCustomer(id, "Jo", "Doe")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		ids       []int64
		wantCount int
	}{
		{name: "all hits", ids: []int64{0, 1, 2}, wantCount: 3},
		{name: "partial misses silently omitted", ids: []int64{1, 99, 2}, wantCount: 2},
		{name: "all misses", ids: []int64{50, 51}, wantCount: 0},
		{name: "empty input", ids: []int64{}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers, err := repo.FindAllByID(ctx, tt.ids)
			if err != nil {
				t.Fatalf("FindAllByID() error = %v", err)
			}
			if len(customers) != tt.wantCount {
				t.Errorf("FindAllByID() returned %d customers, want %d", len(customers), tt.wantCount)
			}
		})
	}

	if _, err := repo.FindAllByID(ctx, nil); err == nil {
		t.Error("FindAllByID(nil) error = nil, want invalid input error")
	}
}

func TestMemoryRepository_DeleteByID_AbsentIsNoop(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Save(ctx, newTestCustomer(1, "Jo", "Doe")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.DeleteByID(ctx, 99); err != nil {
		t.Errorf("DeleteByID() on absent id error = %v, want nil", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("Count() = %d after no-op delete, want 1", count)
	}
}

func TestMemoryRepository_DeleteByEntity(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	stored := newTestCustomer(5, "Jo", "Doe", "jo@example.com")
	if _, err := repo.Save(ctx, stored); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// An entity with the same id but different fields does not match
	if err := repo.Delete(ctx, newTestCustomer(5, "Jane", "Roe")); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if exists, _ := repo.ExistsByID(ctx, 5); !exists {
		t.Fatal("Delete() removed entity despite value mismatch")
	}

	// The equal value matches and removes the entry
	if err := repo.Delete(ctx, newTestCustomer(5, "Jo", "Doe", "jo@example.com")); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if exists, _ := repo.ExistsByID(ctx, 5); exists {
		t.Error("Delete() left entity in place despite value match")
	}

	if err := repo.Delete(ctx, nil); err == nil {
		t.Error("Delete(nil) error = nil, want invalid input error")
	}
}

func TestMemoryRepository_DeleteAllByID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for id := int64(0); id < 4; id++ {
		if _, err := repo.Save(ctx, newTestCustomer(id, "Jo", "Doe")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := repo.DeleteAllByID(ctx, []int64{0, 2, 99}); err != nil {
		t.Fatalf("DeleteAllByID() error = %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	if err := repo.DeleteAllByID(ctx, nil); err == nil {
		t.Error("DeleteAllByID(nil) error = nil, want invalid input error")
	}
}

func TestMemoryRepository_DeleteAllEntities(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := newTestCustomer(1, "Jo", "Doe")
	second := newTestCustomer(2, "Jane", "Roe")
	if _, err := repo.SaveAll(ctx, []*models.Customer{first, second}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	if err := repo.DeleteAllEntities(ctx, []*models.Customer{first, nil}); err == nil {
		t.Fatal("DeleteAllEntities() with nil element error = nil, want invalid input error")
	}
	if count, _ := repo.Count(ctx); count != 2 {
		t.Errorf("Count() = %d after rejected DeleteAllEntities, want 2", count)
	}

	if err := repo.DeleteAllEntities(ctx, []*models.Customer{first, second}); err != nil {
		t.Fatalf("DeleteAllEntities() error = %v", err)
	}
	if count, _ := repo.Count(ctx); count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestMemoryRepository_DeleteAll(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for id := int64(0); id < 5; id++ {
		if _, err := repo.Save(ctx, newTestCustomer(id, "Jo", "Doe")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 0 {
		t.Errorf("Count() = %d after DeleteAll, want 0", count)
	}
}
