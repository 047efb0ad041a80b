package repository

import (
	"context"

	"sample-registry/internal/domain"
)

// SampleRepository defines persistence operations for Sample entities.
type SampleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, sample *domain.Sample) (int64, error)
	List(ctx context.Context) ([]domain.Sample, error)
	Delete(ctx context.Context, id int64) error
}
