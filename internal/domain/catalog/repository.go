package catalog

import "context"

type Repository interface {
	Upsert(ctx context.Context, a AnimalRecord) error
	GetByID(ctx context.Context, id string) (AnimalRecord, error)
	List(ctx context.Context) ([]AnimalRecord, error)
}
