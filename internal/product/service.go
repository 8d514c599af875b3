package product

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Service struct {
	Store Store
	Log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: store, Log: log}
}

func (s *Service) Create(ctx context.Context, req ProductRequest) (ProductResponse, error) {
	p, err := s.Store.Save(ctx, ToProduct(req))
	if err != nil {
		return ProductResponse{}, fmt.Errorf("save product: %w", err)
	}

	s.Log.Debug("product created", zap.Int64("id", p.ID))
	return ToProductResponse(p), nil
}

func (s *Service) Find(ctx context.Context, id int64) (ProductResponse, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return ToProductResponse(p), nil
}

// Update answers with the product returned by Save, not the one looked up before it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (ProductResponse, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	saved, err := s.Store.Save(ctx, ToUpdatedProduct(existing, req))
	if err != nil {
		return ProductResponse{}, fmt.Errorf("save product %d: %w", id, err)
	}

	s.Log.Debug("product updated", zap.Int64("id", saved.ID))
	return ToProductResponse(saved), nil
}

func (s *Service) List(ctx context.Context) ([]ProductResponse, error) {
	ps, err := s.Store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ToProductResponses(ps), nil
}

// Delete is idempotent: a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	s.Log.Debug("product deleted", zap.Int64("id", id))
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (Product, error) {
	p, ok, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return Product{}, notFound(id)
	}
	return p, nil
}
