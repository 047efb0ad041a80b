package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sample-registry/internal/domain"
	"sample-registry/internal/repository"
)

const createSamplesTable = `
CREATE TABLE IF NOT EXISTS samples (
	id BIGSERIAL PRIMARY KEY,
	project_name TEXT NOT NULL,
	ubication TEXT NOT NULL,
	ubication_image TEXT NOT NULL,
	area TEXT NOT NULL,
	specimen TEXT NOT NULL,
	quality_specimen TEXT NOT NULL,
	image_specimen TEXT NOT NULL,
	aditional_comments TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

type SampleRepository struct {
	db *sql.DB
}

func NewSampleRepository(db *sql.DB) repository.SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSamplesTable); err != nil {
		return fmt.Errorf("create samples table: %w", err)
	}
	return nil
}

func (r *SampleRepository) Create(ctx context.Context, sample *domain.Sample) (int64, error) {
	now := time.Now().UTC()
	sample.CreatedAt = now
	sample.UpdatedAt = now

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO samples (project_name, ubication, ubication_image, area, specimen, quality_specimen, image_specimen, aditional_comments, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`,
		sample.ProjectName,
		sample.Ubication,
		sample.UbicationImage,
		sample.Area,
		sample.Specimen,
		sample.QualitySpecimen,
		sample.ImageSpecimen,
		sample.AditionalComments,
		sample.CreatedAt,
		sample.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sample: %w", err)
	}

	sample.ID = id
	return id, nil
}

func (r *SampleRepository) List(ctx context.Context) ([]domain.Sample, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_name, ubication, ubication_image, area, specimen, quality_specimen, image_specimen, aditional_comments, created_at, updated_at
FROM samples
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.Sample
	for rows.Next() {
		var sample domain.Sample
		if err := rows.Scan(
			&sample.ID,
			&sample.ProjectName,
			&sample.Ubication,
			&sample.UbicationImage,
			&sample.Area,
			&sample.Specimen,
			&sample.QualitySpecimen,
			&sample.ImageSpecimen,
			&sample.AditionalComments,
			&sample.CreatedAt,
			&sample.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, sample)
	}

	return samples, rows.Err()
}

func (r *SampleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM samples WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sample delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}
