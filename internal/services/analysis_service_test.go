package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/homevest/api/internal/engine"
	"github.com/homevest/api/internal/logger"
	"github.com/homevest/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAnalysisStore is a mock implementation of AnalysisStore for testing
type MockAnalysisStore struct {
	mock.Mock
}

func (m *MockAnalysisStore) Save(ctx context.Context, record *models.AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnalysisStore) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisStore) List(ctx context.Context, zipCode string, limit int) ([]models.AnalysisSummary, error) {
	args := m.Called(ctx, zipCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnalysisSummary), args.Error(1)
}

func (m *MockAnalysisStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAnalysisCache is a mock implementation of AnalysisCache for testing
type MockAnalysisCache struct {
	mock.Mock
}

func (m *MockAnalysisCache) Get(ctx context.Context, key string) (*models.AnalysisResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisCache) Set(ctx context.Context, key string, result *models.AnalysisResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

// MockEnricher is a mock implementation of NarrativeEnricher for testing
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, property *models.PropertyInput, profile *models.UserFinancialProfile, result *models.AnalysisResult) error {
	args := m.Called(ctx, property, profile, result)
	return args.Error(0)
}

func testProperty() *models.PropertyInput {
	return &models.PropertyInput{
		ZipCode:    "78701",
		Price:      450000,
		Bedrooms:   3,
		Bathrooms:  2,
		LivingArea: 1800,
	}
}

func testBuyerProfile() *models.UserFinancialProfile {
	return &models.UserFinancialProfile{
		Kind: models.ProfileBuyer,
		Buyer: &models.BuyerProfile{
			AnnualIncome:     150000,
			MonthlyDebt:      400,
			AvailableSavings: 120000,
			DownPayment:      0.2,
			InterestRate:     6.5,
			LoanTermYears:    30,
			RiskComfort:      models.RiskBalanced,
		},
	}
}

func newTestService(store *MockAnalysisStore, cache *MockAnalysisCache, enricher NarrativeEnricher) AnalysisService {
	log := logger.New("test")
	return NewAnalysisService(store, cache, enricher, log)
}

func TestAnalyze_Success(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*models.AnalysisResult")).Return(nil)
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(nil)

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, models.ProfileBuyer, record.ProfileKind)
	assert.Equal(t, "78701", record.ZipCode)
	assert.Equal(t, 450000.0, record.Price)
	require.NotNil(t, record.Result)
	assert.Equal(t, record.Result.Score, record.Score)
	assert.Equal(t, record.Result.Level, record.Level)
	assert.False(t, record.CreatedAt.IsZero())
	mockStore.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestAnalyze_CacheHitSkipsEnricher(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	mockEnricher := new(MockEnricher)
	service := newTestService(mockStore, mockCache, mockEnricher)

	ctx := context.Background()
	cached := &models.AnalysisResult{Score: 82, Level: models.LevelAffordable}
	cached.NormalizeShape()

	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(cached, nil)
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(nil)

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	require.NoError(t, err)
	assert.Equal(t, 82, record.Score)
	mockEnricher.AssertNotCalled(t, "Enrich")
	mockCache.AssertNotCalled(t, "Set")
	mockStore.AssertExpectations(t)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)

	property := testProperty()
	property.Price = 0

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: property,
		Profile:  testBuyerProfile(),
	})

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	// Nothing is persisted for invalid inputs
	mockStore.AssertNotCalled(t, "Save")
}

func TestAnalyze_IncompleteProfile(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)

	profile := testBuyerProfile()
	profile.Buyer.LoanTermYears = 0
	profile.Buyer.RiskComfort = ""

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  profile,
	})

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, engine.ErrIncompleteProfile)
	mockStore.AssertNotCalled(t, "Save")
}

func TestAnalyze_EnricherOverlaysNarrative(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	mockEnricher := new(MockEnricher)
	service := newTestService(mockStore, mockCache, mockEnricher)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*models.AnalysisResult")).Return(nil)
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(nil)
	mockEnricher.On("Enrich", ctx, mock.AnythingOfType("*models.PropertyInput"),
		mock.AnythingOfType("*models.UserFinancialProfile"), mock.AnythingOfType("*models.AnalysisResult")).
		Run(func(args mock.Arguments) {
			result := args.Get(3).(*models.AnalysisResult)
			result.AdvisorMessage = "generated message"
		}).
		Return(nil)

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	require.NoError(t, err)
	assert.Equal(t, "generated message", record.Result.AdvisorMessage)
	mockEnricher.AssertExpectations(t)
}

func TestAnalyze_EnricherFailureFallsBack(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	mockEnricher := new(MockEnricher)
	service := newTestService(mockStore, mockCache, mockEnricher)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*models.AnalysisResult")).Return(nil)
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(nil)
	mockEnricher.On("Enrich", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("generation timed out"))

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	// Generator failure degrades to the locally computed narrative
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.NotEmpty(t, record.Result.AdvisorMessage)
	mockStore.AssertExpectations(t)
}

func TestAnalyze_EnricherFailureWithRequireNarrative(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	mockEnricher := new(MockEnricher)
	service := newTestService(mockStore, mockCache, mockEnricher)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockEnricher.On("Enrich", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("generation timed out"))

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property:         testProperty(),
		Profile:          testBuyerProfile(),
		RequireNarrative: true,
	})

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrNarrativeUnavailable)
	mockStore.AssertNotCalled(t, "Save")
}

func TestAnalyze_CacheFailuresAreBestEffort(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, errors.New("redis down"))
	mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.Anything).Return(errors.New("redis down"))
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(nil)

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	mockStore.AssertExpectations(t)
}

func TestAnalyze_StoreFailure(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	dbError := errors.New("database connection failed")
	mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	mockStore.On("Save", ctx, mock.AnythingOfType("*models.AnalysisRecord")).Return(dbError)

	record, err := service.Analyze(ctx, AnalyzeRequest{
		Property: testProperty(),
		Profile:  testBuyerProfile(),
	})

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, dbError)
}

func TestGetAnalysis_Success(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	id := uuid.New()
	expected := &models.AnalysisRecord{ID: id, Score: 70}

	mockStore.On("GetByID", ctx, id).Return(expected, nil)

	record, err := service.GetAnalysis(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, expected.ID, record.ID)
	mockStore.AssertExpectations(t)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	id := uuid.New()

	// Store returns nil, nil when no record exists
	mockStore.On("GetByID", ctx, id).Return(nil, nil)

	record, err := service.GetAnalysis(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestGetAnalysis_StoreError(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	id := uuid.New()
	dbError := errors.New("database connection failed")

	mockStore.On("GetByID", ctx, id).Return(nil, dbError)

	record, err := service.GetAnalysis(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, dbError)
}

func TestListAnalyses(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	expected := []models.AnalysisSummary{
		{ID: uuid.New(), ZipCode: "78701", Score: 75, Level: models.LevelAffordable},
	}

	mockStore.On("List", ctx, "78701", 20).Return(expected, nil)

	summaries, err := service.ListAnalyses(ctx, "78701", 20)

	require.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, expected[0].ID, summaries[0].ID)
	mockStore.AssertExpectations(t)
}

func TestDeleteAnalysis_Success(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	id := uuid.New()

	mockStore.On("Delete", ctx, id).Return(true, nil)

	err := service.DeleteAnalysis(ctx, id)

	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestDeleteAnalysis_NotFound(t *testing.T) {
	mockStore := new(MockAnalysisStore)
	mockCache := new(MockAnalysisCache)
	service := newTestService(mockStore, mockCache, nil)

	ctx := context.Background()
	id := uuid.New()

	mockStore.On("Delete", ctx, id).Return(false, nil)

	err := service.DeleteAnalysis(ctx, id)

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestCacheKey_StableAndInputSensitive(t *testing.T) {
	property := testProperty()
	profile := testBuyerProfile()

	key1 := cacheKey(property, profile)
	key2 := cacheKey(property, profile)
	assert.Equal(t, key1, key2, "Identical inputs must share a cache key")

	other := testProperty()
	other.Price = 500000
	key3 := cacheKey(other, profile)
	assert.NotEqual(t, key1, key3, "Different inputs must not share a cache key")
}
