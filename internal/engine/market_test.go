package engine

import (
	"testing"

	"github.com/homevest/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMarketRead_PriceVsEstimate(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		estimate    *float64
		wantVerdict string
		wantPct     float64
	}{
		{
			name:        "no estimate defaults to fair",
			price:       450000,
			estimate:    nil,
			wantVerdict: models.VerdictFair,
			wantPct:     0,
		},
		{
			name:        "well above estimate",
			price:       450000,
			estimate:    floatPtr(400000),
			wantVerdict: models.VerdictOverpriced,
			wantPct:     12.5,
		},
		{
			name:        "well below estimate",
			price:       380000,
			estimate:    floatPtr(420000),
			wantVerdict: models.VerdictUnderpriced,
			wantPct:     -9.5,
		},
		{
			name:        "at the band edge stays fair",
			price:       420000,
			estimate:    floatPtr(400000),
			wantVerdict: models.VerdictFair,
			wantPct:     5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := &models.PropertyInput{
				ZipCode:        "78701",
				Price:          tt.price,
				LivingArea:     1800,
				EstimatedValue: tt.estimate,
			}

			market := MarketRead(property)
			assert.Equal(t, tt.wantVerdict, market.PriceVsEstimate.Verdict)
			assert.InDelta(t, tt.wantPct, market.PriceVsEstimate.Percentage, 0.05)
		})
	}
}

func TestMarketRead_DaysOnMarket(t *testing.T) {
	tests := []struct {
		name       string
		days       *int
		wantStatus string
	}{
		{"fresh listing", intPtr(5), models.MarketFastMoving},
		{"missing days counts as fresh", nil, models.MarketFastMoving},
		{"two weeks is normal", intPtr(14), models.MarketNormal},
		{"two months is normal", intPtr(60), models.MarketNormal},
		{"past two months is slow", intPtr(61), models.MarketSlowMoving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := &models.PropertyInput{
				ZipCode:      "78701",
				Price:        450000,
				LivingArea:   1800,
				DaysOnMarket: tt.days,
			}

			market := MarketRead(property)
			assert.Equal(t, tt.wantStatus, market.DaysOnMarketStatus)
			assert.NotEmpty(t, market.Message)
		})
	}
}

func TestMarketRead_StatusMessages(t *testing.T) {
	property := &models.PropertyInput{ZipCode: "78701", Price: 450000, LivingArea: 1800}

	property.DaysOnMarket = intPtr(5)
	assert.Equal(t, "This property is moving quickly. Consider making an offer soon.", MarketRead(property).Message)

	property.DaysOnMarket = intPtr(30)
	assert.Equal(t, "Typical time on market for this area.", MarketRead(property).Message)

	property.DaysOnMarket = intPtr(90)
	assert.Equal(t, "Property has been on market for a while. Good negotiation opportunity.", MarketRead(property).Message)
}

func TestMarketRead_PricePerSqft(t *testing.T) {
	property := &models.PropertyInput{ZipCode: "78701", Price: 450000, LivingArea: 1800}
	market := MarketRead(property)
	assert.Equal(t, 250.0, market.PricePerSqft)
	assert.Equal(t, 150.0, market.MarketAvgPerSqft)

	// No living area reports zero instead of faulting
	property.LivingArea = 0
	assert.Equal(t, 0.0, MarketRead(property).PricePerSqft)
}

func TestAssessRisk_FinancialBands(t *testing.T) {
	market := models.MarketSummary{PricePerSqft: 150, MarketAvgPerSqft: 150}

	low := AssessRisk(30, market)
	assert.Equal(t, 20, low.FinancialScore)
	assert.Equal(t, models.RiskLow, low.Overall)
	assert.Empty(t, low.Factors)
	assert.NotNil(t, low.Factors, "factors serialize as an empty array, not null")

	medium := AssessRisk(40, market)
	assert.Equal(t, 50, medium.FinancialScore)
	assert.Equal(t, models.RiskMedium, medium.Overall)

	high := AssessRisk(44, market)
	assert.Equal(t, 80, high.FinancialScore)
	assert.Equal(t, models.RiskHigh, high.Overall)
	assert.Contains(t, high.Factors, "High debt-to-income ratio")
}

func TestAssessRisk_MarketScore(t *testing.T) {
	// 250/sqft against a 150 average clears the 10% overprice factor
	pricey := models.MarketSummary{PricePerSqft: 250, MarketAvgPerSqft: 150}
	risk := AssessRisk(30, pricey)
	assert.Equal(t, 60, risk.MarketScore)
	assert.Contains(t, risk.Factors, "Priced above the market average per square foot")

	typical := models.MarketSummary{PricePerSqft: 160, MarketAvgPerSqft: 150}
	risk = AssessRisk(30, typical)
	assert.Equal(t, 30, risk.MarketScore)
}

func TestAssessRisk_LiquidityScore(t *testing.T) {
	risk := AssessRisk(30, models.MarketSummary{PricePerSqft: 150, MarketAvgPerSqft: 150})
	assert.Equal(t, 30, risk.LiquidityScore)
}
