package product

import "context"

type Store interface {
	// Save assigns the next id when p.ID is zero, otherwise writes p under its own id.
	Save(ctx context.Context, p Product) (Product, error)
	FindByID(ctx context.Context, id int64) (Product, bool, error)
	FindAll(ctx context.Context) ([]Product, error)
	DeleteByID(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

func NewStore() Store {
	return NewMemStore()
}
