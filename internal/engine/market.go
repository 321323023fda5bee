package engine

import (
	"github.com/homevest/api/internal/models"
)

// MarketRead scores the listing against its market estimate and
// days-on-market. Heuristic scoring, not statistical inference; thresholds
// live in constants.go.
func MarketRead(property *models.PropertyInput) models.MarketSummary {
	pricePerSqft := 0.0
	if property.LivingArea > 0 {
		pricePerSqft = property.Price / property.LivingArea
	}

	estimate := property.Price
	if property.EstimatedValue != nil && *property.EstimatedValue > 0 {
		estimate = *property.EstimatedValue
	}
	difference := property.Price - estimate
	percentage := difference / estimate * 100

	verdict := models.VerdictFair
	switch {
	case percentage > estimateVerdictBandPct:
		verdict = models.VerdictOverpriced
	case percentage < -estimateVerdictBandPct:
		verdict = models.VerdictUnderpriced
	}

	days := property.MarketDays()
	status := models.MarketNormal
	message := "Typical time on market for this area."
	switch {
	case days < fastMovingMaxDays:
		status = models.MarketFastMoving
		message = "This property is moving quickly. Consider making an offer soon."
	case days > slowMovingMinDays:
		status = models.MarketSlowMoving
		message = "Property has been on market for a while. Good negotiation opportunity."
	}

	return models.MarketSummary{
		PricePerSqft:       roundDollars(pricePerSqft),
		MarketAvgPerSqft:   marketAvgPricePerSqft,
		DaysOnMarketStatus: status,
		Message:            message,
		PriceVsEstimate: models.PriceVsEstimate{
			Difference: roundDollars(difference),
			Percentage: roundTo(percentage, 1),
			Verdict:    verdict,
		},
	}
}

// AssessRisk derives the weighted risk bands from the DTI and market read.
// The overall band follows the financial sub-score alone; market and
// liquidity scores are reported for context.
func AssessRisk(dtiRatio float64, market models.MarketSummary) models.RiskAssessment {
	financial := financialRiskBase
	var factors []string
	switch {
	case dtiRatio > dtiCeiling:
		financial = financialRiskHigh
		factors = append(factors, "High debt-to-income ratio")
	case dtiRatio > dtiComfortable:
		financial = financialRiskElevated
	}

	marketScore := marketRiskBase
	if market.PricePerSqft > market.MarketAvgPerSqft*overpricedPerSqftFactor {
		marketScore = marketRiskElevated
		factors = append(factors, "Priced above the market average per square foot")
	}

	overall := models.RiskLow
	switch {
	case financial > 60:
		overall = models.RiskHigh
	case financial > 40:
		overall = models.RiskMedium
	}

	if factors == nil {
		factors = []string{}
	}
	return models.RiskAssessment{
		Overall:        overall,
		FinancialScore: financial,
		MarketScore:    marketScore,
		LiquidityScore: liquidityRiskBase,
		Factors:        factors,
	}
}
