package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is a persisted analysis: the inputs it was computed from,
// the full result document, and the columns list queries filter on.
type AnalysisRecord struct {
	ID          uuid.UUID             `json:"id"`
	ProfileKind ProfileKind           `json:"profileKind"`
	ZipCode     string                `json:"zipCode"`
	Price       float64               `json:"price"`
	Score       int                   `json:"score"`
	Level       string                `json:"level"`
	Property    *PropertyInput        `json:"property"`
	Profile     *UserFinancialProfile `json:"profile"`
	Result      *AnalysisResult       `json:"result"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// AnalysisSummary is the list-view projection of a persisted analysis.
type AnalysisSummary struct {
	ID          uuid.UUID   `json:"id"`
	ProfileKind ProfileKind `json:"profileKind"`
	ZipCode     string      `json:"zipCode"`
	Price       float64     `json:"price"`
	Score       int         `json:"score"`
	Level       string      `json:"level"`
	CreatedAt   time.Time   `json:"createdAt"`
}
