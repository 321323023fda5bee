package engine

// Heuristic constants for the calculators. These are configuration values
// tuned to the Texas target region, not derived quantities; swap them here
// rather than threading deeper intent through the calculators.
const (
	// Property tax: 1.5% of price annually.
	propertyTaxAnnualRate = 0.015

	// Homeowners insurance scales linearly with price from a single
	// reference point (~$125/month at a $450k home). Replaceable if the
	// engine ever serves regions the original calibration doesn't fit.
	insuranceReferencePrice     = 450_000.0
	insuranceMonthlyAtReference = 125.0

	// PMI: 0.5% of the loan amount annually, below 20% down.
	pmiAnnualRate     = 0.005
	pmiCutoffFraction = 0.20

	// Closing costs estimated at 3% of purchase price.
	closingCostRate = 0.03

	// Fraction of gross monthly income assumed available for saving when
	// projecting months-to-save.
	savingsCapacityRate = 0.20

	// DTI score curve breakpoints.
	dtiComfortable = 36.0
	dtiCeiling     = 43.0

	// Rental underwriting defaults.
	rentFallbackRate      = 0.01 // 1% of price per month when no rent estimate
	defaultVacancyRate    = 0.07
	defaultMaintenancePct = 1.0 // percent of price per year
	managementFeeRate     = 0.08
	investorInsuranceRate = 0.007 // percent of price per year

	// Five-year projection factors.
	rentEscalationRate = 0.03
	appreciationRate   = 0.03
	projectionYears    = 5

	// Market heuristics.
	estimateVerdictBandPct  = 5.0
	fastMovingMaxDays       = 14
	slowMovingMinDays       = 60
	marketAvgPricePerSqft   = 150.0
	overpricedPerSqftFactor = 1.10

	// Risk sub-scores.
	financialRiskHigh     = 80
	financialRiskElevated = 50
	financialRiskBase     = 20
	marketRiskElevated    = 60
	marketRiskBase        = 30
	liquidityRiskBase     = 30

	// Offer discounts.
	overpricedOfferFactor = 0.95
	standardOfferFactor   = 0.98
)

// Affordability level thresholds by risk band. Conservative profiles
// require higher scores for the same label.
var levelThresholds = map[string]struct{ affordable, stretch int }{
	"conservative": {affordable: 80, stretch: 50},
	"balanced":     {affordable: 70, stretch: 40},
	"aggressive":   {affordable: 60, stretch: 35},
}
