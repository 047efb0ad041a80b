package domain

import "time"

// Sample represents a physical specimen record ("muestra") collected in the
// field: where it was taken, what it is, and the photos backing it.
type Sample struct {
	ID                int64
	ProjectName       string
	Ubication         string
	UbicationImage    string
	Area              string
	Specimen          string
	QualitySpecimen   string
	ImageSpecimen     string
	AditionalComments string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
