package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RepositoryPort describes the persistence the service relies on.
type RepositoryPort interface {
	List(ctx context.Context) ([]Product, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the product list inside a transaction.
type TxRepository interface {
	List(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, products []Product) error
}

// Service orchestrates catalog use cases.
type Service struct {
	repo  RepositoryPort
	now   func() time.Time
	newID func() string
}

// NewService constructs the catalog service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// List returns every product, newest first.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return products, nil
}

// Search filters products by name or description.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(products, query), nil
}

// Get returns a product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	p, ok := NewInventory(products).FindByID(id)
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// FindByName returns the first product whose name matches case-insensitively.
func (s *Service) FindByName(ctx context.Context, name string) (Product, bool, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, false, err
	}
	p, ok := NewInventory(products).FindByName(name)
	return p, ok, nil
}

// Create adds a product at the head of the list.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.validate(); err != nil {
		return Product{}, err
	}
	product := Product{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		CreatedAt:   s.now().UnixMilli(),
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		products, err := tx.List(ctx)
		if err != nil {
			return err
		}
		if _, exists := NewInventory(products).FindByID(product.ID); exists {
			return ErrDuplicateID
		}
		return tx.Save(ctx, append([]Product{product}, products...))
	})
	if err != nil {
		return Product{}, fmt.Errorf("catalog: create: %w", err)
	}
	return product, nil
}

// Update replaces the editable fields of a product.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := in.validate(); err != nil {
		return Product{}, err
	}
	var updated Product
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		products, err := tx.List(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(products, id)
		if idx < 0 {
			return ErrNotFound
		}
		p := products[idx]
		p.Name = strings.TrimSpace(in.Name)
		p.Price = in.Price
		p.Stock = in.Stock
		p.Description = in.Description
		products[idx] = p
		updated = p
		return tx.Save(ctx, products)
	})
	if err != nil {
		return Product{}, fmt.Errorf("catalog: update: %w", err)
	}
	return updated, nil
}

// Delete removes a product. Invoices that referenced it keep their lines.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		products, err := tx.List(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(products, id)
		if idx < 0 {
			return ErrNotFound
		}
		return tx.Save(ctx, append(products[:idx:idx], products[idx+1:]...))
	})
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	return nil
}

// AdjustStock applies a stock delta to a single product.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (Product, error) {
	var adjusted Product
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		products, err := tx.List(ctx)
		if err != nil {
			return err
		}
		inv := NewInventory(products)
		adjusted, err = inv.AdjustStock(id, delta)
		if err != nil {
			return err
		}
		return tx.Save(ctx, inv.Products())
	})
	if err != nil {
		return Product{}, fmt.Errorf("catalog: adjust stock: %w", err)
	}
	return adjusted, nil
}

func indexOf(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
