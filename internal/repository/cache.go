package repository

import (
	"context"

	"github.com/homevest/api/internal/models"
)

// AnalysisCache defines the interface for short-lived analysis result
// caching. A cache miss is nil, nil; errors are reserved for backend
// failures so callers can treat the cache as best-effort.
type AnalysisCache interface {
	// Get fetches a cached result by key. Returns nil, nil on a miss.
	Get(ctx context.Context, key string) (*models.AnalysisResult, error)

	// Set stores a result under key for the cache's configured lifetime.
	Set(ctx context.Context, key string, result *models.AnalysisResult) error
}
