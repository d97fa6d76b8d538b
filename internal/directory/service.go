package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RepositoryPort describes the persistence the service relies on.
type RepositoryPort interface {
	List(ctx context.Context) ([]Customer, error)
	Mutate(ctx context.Context, fn func([]Customer) ([]Customer, error)) error
}

// Service orchestrates customer use cases.
type Service struct {
	repo   RepositoryPort
	phones PhoneValidator
	now    func() time.Time
	newID  func() string
}

// NewService constructs the directory service.
func NewService(repo RepositoryPort, phones PhoneValidator) *Service {
	return &Service{repo: repo, phones: phones, now: time.Now, newID: uuid.NewString}
}

// List returns every customer, newest first.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	return customers, nil
}

// Search filters customers by name or phone.
func (s *Service) Search(ctx context.Context, query string) ([]Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(customers, query), nil
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return Customer{}, err
	}
	if idx := indexOf(customers, id); idx >= 0 {
		return customers[idx], nil
	}
	return Customer{}, ErrNotFound
}

// FindByPhone looks a customer up by phone, ignoring whitespace.
func (s *Service) FindByPhone(ctx context.Context, phone string) (Customer, bool, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return Customer{}, false, err
	}
	c, ok := FindByPhone(customers, phone)
	return c, ok, nil
}

// Create adds a customer at the head of the list.
func (s *Service) Create(ctx context.Context, in CustomerInput) (Customer, error) {
	if err := s.validate(in); err != nil {
		return Customer{}, err
	}
	customer := Customer{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   in.Address,
		Email:     in.Email,
		CreatedAt: s.now().UnixMilli(),
	}
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		if indexOf(customers, customer.ID) >= 0 {
			return nil, ErrDuplicateID
		}
		return append([]Customer{customer}, customers...), nil
	})
	if err != nil {
		return Customer{}, fmt.Errorf("directory: create: %w", err)
	}
	return customer, nil
}

// Update replaces the editable fields of a customer.
func (s *Service) Update(ctx context.Context, id string, in CustomerInput) (Customer, error) {
	if err := s.validate(in); err != nil {
		return Customer{}, err
	}
	var updated Customer
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		idx := indexOf(customers, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		c := customers[idx]
		c.Name = strings.TrimSpace(in.Name)
		c.Phone = strings.TrimSpace(in.Phone)
		c.Address = in.Address
		c.Email = in.Email
		customers[idx] = c
		updated = c
		return customers, nil
	})
	if err != nil {
		return Customer{}, fmt.Errorf("directory: update: %w", err)
	}
	return updated, nil
}

// Delete removes a customer. Invoices keep their embedded snapshot.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Mutate(ctx, func(customers []Customer) ([]Customer, error) {
		idx := indexOf(customers, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		return append(customers[:idx:idx], customers[idx+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("directory: delete: %w", err)
	}
	return nil
}

func (s *Service) validate(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidCustomer)
	}
	return s.phones.Validate(in.Phone)
}

func indexOf(customers []Customer, id string) int {
	for i, c := range customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
