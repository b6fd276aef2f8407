package feedback

import "context"

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context, limit, offset int) ([]*Feedback, int, error)
	Stats(ctx context.Context) (*Stats, error)
}
