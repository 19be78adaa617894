package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/freerider/customer-registry/internal/models"
	"github.com/freerider/customer-registry/internal/repository"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context) ([]CustomerView, error)
	GetByID(ctx context.Context, id int64) (*CustomerView, error)
	CreateBatch(ctx context.Context, payloads []Payload) (*BatchResult, error)
	UpdateBatch(ctx context.Context, payloads []Payload) error
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger

	// mu serializes POST batches: id assignment, the exists checks and
	// the saves must act as one atomic unit, otherwise two concurrent
	// batches can claim the same next free id.
	mu sync.Mutex
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// List returns all customers in the compact projection
func (s *customerService) List(ctx context.Context) ([]CustomerView, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	views := make([]CustomerView, 0, len(customers))
	for _, customer := range customers {
		views = append(views, CustomerView{
			Name:     customer.LastName,
			First:    customer.FirstName,
			Contacts: joinContacts(customer.Contacts),
		})
	}
	return views, nil
}

// GetByID returns one customer in the compact projection
func (s *customerService) GetByID(ctx context.Context, id int64) (*CustomerView, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CustomerView{
		Name:     customer.LastName,
		First:    customer.FirstName,
		Contacts: joinContacts(customer.Contacts),
	}, nil
}

// CreateBatch runs every payload through validation, partitions the batch
// into malformed, conflicting and accepted entries, and persists the
// accepted ones only when the other two buckets stay empty. Either zero
// entities are written or all accepted ones are.
func (s *customerService) CreateBatch(ctx context.Context, payloads []Payload) (*BatchResult, error) {
	if payloads == nil {
		return nil, models.ErrInvalidInput("payloads must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &BatchResult{
		Malformed: []Payload{},
		Conflicts: []Payload{},
	}
	accepted := []*models.Customer{}

	for _, payload := range payloads {
		customer, ok := s.accept(ctx, payload)
		if !ok {
			result.Malformed = append(result.Malformed, payload)
			continue
		}

		exists, err := s.customerRepo.ExistsByID(ctx, customer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check customer existence: %w", err)
		}
		if exists {
			result.Conflicts = append(result.Conflicts, payload)
			continue
		}

		accepted = append(accepted, customer)
	}

	// Malformed entries reject the whole batch, conflicts next; only a
	// clean batch reaches the store.
	if !result.Ok() {
		return result, nil
	}

	if _, err := s.customerRepo.SaveAll(ctx, accepted); err != nil {
		return nil, fmt.Errorf("failed to save customers: %w", err)
	}
	result.Accepted = len(accepted)

	s.logger.Info("customers created",
		slog.Int("count", result.Accepted),
	)

	return result, nil
}

// UpdateBatch accepts update payloads without applying them. The update
// path is a stub that always reports acceptance.
func (s *customerService) UpdateBatch(ctx context.Context, payloads []Payload) error {
	s.logger.Info("customer update accepted without changes",
		slog.Int("count", len(payloads)),
	)
	return nil
}

// Delete removes a customer by id
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if id < 0 {
		return models.ErrInvalidInput("id must not be negative")
	}

	exists, err := s.customerRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check customer existence: %w", err)
	}
	if !exists {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}

	if err := s.customerRepo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)

	return nil
}

// accept turns one raw payload into a candidate customer. Malformed data
// is a normal outcome and reported through ok=false, never an error.
func (s *customerService) accept(ctx context.Context, payload Payload) (*models.Customer, bool) {
	customer := &models.Customer{}

	if raw, present := payload["id"]; present {
		id, ok := parsePayloadID(raw)
		if !ok {
			return nil, false
		}
		customer.ID = id
	} else {
		id, err := s.nextFreeID(ctx)
		if err != nil {
			s.logger.Error("failed to find next free id",
				slog.String("error", err.Error()),
			)
			return nil, false
		}
		customer.ID = id
	}

	if raw, present := payload["first"]; present && raw != nil {
		customer.FirstName = fmt.Sprint(raw)
	}
	if raw, present := payload["name"]; present && raw != nil {
		customer.LastName = fmt.Sprint(raw)
	}

	if raw, present := payload["contacts"]; present && raw != nil {
		for _, contact := range strings.Split(fmt.Sprint(raw), ";") {
			contact = strings.TrimSpace(contact)
			if contact != "" {
				customer.AddContact(contact)
			}
		}
	}

	if err := customer.Validate(); err != nil {
		return nil, false
	}
	return customer, true
}

// nextFreeID probes for the smallest non-negative id that is not in use
func (s *customerService) nextFreeID(ctx context.Context) (int64, error) {
	for id := int64(0); ; id++ {
		exists, err := s.customerRepo.ExistsByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
}

// parsePayloadID reads an id value out of raw payload data. JSON numbers
// arrive as float64 and must be integral; numeric strings are accepted.
func parsePayloadID(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
