package orders

import "context"

// Repository persists orders.
type Repository interface {
	// Create stores o, assigning its ID.
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]Order, error)
	// Update loads the order, applies fn and stores the result atomically.
	// An error from fn aborts the update and is returned as is.
	Update(ctx context.Context, id int64, fn func(*Order) error) (Order, error)
	Delete(ctx context.Context, id int64) error
}
