package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homevest/api/internal/engine"
	"github.com/homevest/api/internal/logger"
	"github.com/homevest/api/internal/models"
	"github.com/homevest/api/internal/repository"
)

// Service-level errors
var (
	ErrAnalysisNotFound     = errors.New("analysis not found")
	ErrNarrativeUnavailable = errors.New("generated narrative unavailable")
)

// NarrativeEnricher overlays generated narrative onto a computed result.
// The advisor package provides the real implementation; a nil enricher
// means the generator is not configured.
type NarrativeEnricher interface {
	Enrich(ctx context.Context, property *models.PropertyInput, profile *models.UserFinancialProfile, result *models.AnalysisResult) error
}

// AnalyzeRequest carries one analysis invocation through the service.
type AnalyzeRequest struct {
	Property *models.PropertyInput
	Profile  *models.UserFinancialProfile

	// RequireNarrative makes a generator failure fatal for the request
	// instead of falling back to the locally computed narrative.
	RequireNarrative bool
}

// AnalysisService defines the interface for analysis business logic.
type AnalysisService interface {
	// Analyze computes, optionally enriches, persists and returns a full
	// analysis for one property and profile.
	// Returns engine.ErrInvalidInput or engine.ErrIncompleteProfile for bad
	// inputs, and ErrNarrativeUnavailable when RequireNarrative is set and
	// the generator fails.
	Analyze(ctx context.Context, req AnalyzeRequest) (*models.AnalysisRecord, error)

	// GetAnalysis retrieves one persisted analysis by ID.
	// Returns ErrAnalysisNotFound if no analysis with that ID exists.
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)

	// ListAnalyses returns summaries of recent analyses, newest first,
	// optionally filtered by zip code.
	ListAnalyses(ctx context.Context, zipCode string, limit int) ([]models.AnalysisSummary, error)

	// DeleteAnalysis removes a persisted analysis.
	// Returns ErrAnalysisNotFound if no analysis with that ID exists.
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

// analysisService is the concrete implementation of AnalysisService.
type analysisService struct {
	store    repository.AnalysisStore
	cache    repository.AnalysisCache
	enricher NarrativeEnricher
	log      *logger.Logger
}

// NewAnalysisService creates a new instance of AnalysisService. The
// enricher may be nil when no generator is configured.
func NewAnalysisService(store repository.AnalysisStore, cache repository.AnalysisCache, enricher NarrativeEnricher, log *logger.Logger) AnalysisService {
	return &analysisService{
		store:    store,
		cache:    cache,
		enricher: enricher,
		log:      log,
	}
}

// Analyze runs the calculator pipeline, overlays generated narrative when a
// generator is configured, and persists the outcome. Identical inputs
// within the cache lifetime reuse the previously computed result instead of
// recomputing and re-invoking the generator.
func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*models.AnalysisRecord, error) {
	key := cacheKey(req.Property, req.Profile)

	result := s.cachedResult(ctx, key)
	if result == nil {
		var err error
		result, err = s.computeResult(ctx, req, key)
		if err != nil {
			return nil, err
		}
	}

	record := &models.AnalysisRecord{
		ID:          uuid.New(),
		ProfileKind: req.Profile.Kind,
		ZipCode:     req.Property.ZipCode,
		Price:       req.Property.Price,
		Score:       result.Score,
		Level:       result.Level,
		Property:    req.Property,
		Profile:     req.Profile,
		Result:      result,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Save(ctx, record); err != nil {
		s.log.Error("Failed to persist analysis", err, map[string]interface{}{
			"analysis_id": record.ID.String(),
			"zip_code":    record.ZipCode,
		})
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	s.log.Info("Analysis completed", map[string]interface{}{
		"analysis_id":  record.ID.String(),
		"profile_kind": string(record.ProfileKind),
		"score":        record.Score,
		"level":        record.Level,
	})

	return record, nil
}

// cachedResult checks the cache for a previously computed result. Cache
// backend failures are logged and treated as misses.
func (s *analysisService) cachedResult(ctx context.Context, key string) *models.AnalysisResult {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("Analysis cache read failed", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
		return nil
	}
	if cached != nil {
		s.log.Debug("Analysis cache hit", map[string]interface{}{
			"cache_key": key,
		})
	}
	return cached
}

func (s *analysisService) computeResult(ctx context.Context, req AnalyzeRequest, key string) (*models.AnalysisResult, error) {
	result, err := engine.Analyze(req.Property, req.Profile)
	if err != nil {
		// Sentinel-wrapped input errors pass through for the handler to map
		return nil, err
	}

	if s.enricher != nil {
		if err := s.enricher.Enrich(ctx, req.Property, req.Profile, result); err != nil {
			if req.RequireNarrative {
				return nil, fmt.Errorf("%w: %v", ErrNarrativeUnavailable, err)
			}
			// Fall back to the locally computed narrative
			s.log.Warn("Narrative generation failed, using local narrative", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn("Analysis cache write failed", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
	}
	return result, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load analysis", err, map[string]interface{}{
			"analysis_id": id.String(),
		})
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if record == nil {
		return nil, ErrAnalysisNotFound
	}
	return record, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, zipCode string, limit int) ([]models.AnalysisSummary, error) {
	summaries, err := s.store.List(ctx, zipCode, limit)
	if err != nil {
		s.log.Error("Failed to list analyses", err, map[string]interface{}{
			"zip_code": zipCode,
			"limit":    limit,
		})
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

func (s *analysisService) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete analysis", err, map[string]interface{}{
			"analysis_id": id.String(),
		})
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if !deleted {
		return ErrAnalysisNotFound
	}

	s.log.Info("Analysis deleted", map[string]interface{}{
		"analysis_id": id.String(),
	})
	return nil
}

// cacheKey derives a stable key from the analysis inputs. Two requests with
// byte-identical property and profile documents share a key.
func cacheKey(property *models.PropertyInput, profile *models.UserFinancialProfile) string {
	h := sha256.New()
	if payload, err := json.Marshal(property); err == nil {
		h.Write(payload)
	}
	if payload, err := json.Marshal(profile); err == nil {
		h.Write(payload)
	}
	return hex.EncodeToString(h.Sum(nil))
}
