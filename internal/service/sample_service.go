package service

import (
	"context"

	"sample-registry/internal/domain"
	"sample-registry/internal/repository"
)

// CreateSampleInput carries the fields accepted by sample creation. All of
// them are required.
type CreateSampleInput struct {
	ProjectName       string `json:"project_name"`
	Ubication         string `json:"ubication"`
	UbicationImage    string `json:"ubication_image"`
	Area              string `json:"area"`
	Specimen          string `json:"specimen"`
	QualitySpecimen   string `json:"quality_specimen"`
	ImageSpecimen     string `json:"image_specimen"`
	AditionalComments string `json:"aditional_comments"`
}

// SampleService describes specimen record operations.
type SampleService interface {
	Create(ctx context.Context, input CreateSampleInput) (*domain.Sample, error)
	List(ctx context.Context) ([]domain.Sample, error)
	Delete(ctx context.Context, id int64) error
}

type sampleService struct {
	samples repository.SampleRepository
}

func NewSampleService(samples repository.SampleRepository) SampleService {
	return &sampleService{samples: samples}
}

func (s *sampleService) Create(ctx context.Context, input CreateSampleInput) (*domain.Sample, error) {
	if err := requireFields(map[string]string{
		"project_name":       input.ProjectName,
		"ubication":          input.Ubication,
		"ubication_image":    input.UbicationImage,
		"area":               input.Area,
		"specimen":           input.Specimen,
		"quality_specimen":   input.QualitySpecimen,
		"image_specimen":     input.ImageSpecimen,
		"aditional_comments": input.AditionalComments,
	}); err != nil {
		return nil, err
	}

	sample := &domain.Sample{
		ProjectName:       input.ProjectName,
		Ubication:         input.Ubication,
		UbicationImage:    input.UbicationImage,
		Area:              input.Area,
		Specimen:          input.Specimen,
		QualitySpecimen:   input.QualitySpecimen,
		ImageSpecimen:     input.ImageSpecimen,
		AditionalComments: input.AditionalComments,
	}

	if _, err := s.samples.Create(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *sampleService) List(ctx context.Context) ([]domain.Sample, error) {
	return s.samples.List(ctx)
}

func (s *sampleService) Delete(ctx context.Context, id int64) error {
	return s.samples.Delete(ctx, id)
}
