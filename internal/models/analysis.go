package models

// Affordability levels for buyer analyses.
const (
	LevelAffordable   = "Affordable"
	LevelStretch      = "Stretch"
	LevelTooExpensive = "Too Expensive"
)

// Investment levels for investor analyses.
const (
	LevelExcellent = "Excellent"
	LevelGood      = "Good"
	LevelMarginal  = "Marginal"
	LevelPoor      = "Poor"
)

// Price-vs-estimate verdicts.
const (
	VerdictOverpriced  = "Overpriced"
	VerdictFair        = "Fair"
	VerdictUnderpriced = "Underpriced"
)

// Days-on-market statuses.
const (
	MarketFastMoving = "Fast Moving"
	MarketNormal     = "Normal"
	MarketSlowMoving = "Slow Moving"
)

// Overall risk bands.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// PaymentBreakdown splits a total monthly housing payment into its
// components. Principal and interest reflect the first scheduled payment.
type PaymentBreakdown struct {
	Total     float64 `json:"total"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Tax       float64 `json:"tax"`
	Insurance float64 `json:"insurance"`
	HOA       float64 `json:"hoa"`
	PMI       float64 `json:"pmi"`
}

// AffordabilityResult is the buyer-side calculator output.
type AffordabilityResult struct {
	Level          string           `json:"level"`
	MonthlyPayment PaymentBreakdown `json:"monthlyPayment"`
	DTIRatio       float64          `json:"dtiRatio"`
	Score          int              `json:"score"`
}

// DownPaymentScenario is one entry of the 5/10/20 percent sweep.
type DownPaymentScenario struct {
	Recommendation string  `json:"recommendation"`
	Percentage     float64 `json:"percentage"`
	Amount         float64 `json:"amount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	PMI            float64 `json:"pmi"`
}

// ClosingCosts estimates the cash due at closing beyond the down payment.
type ClosingCosts struct {
	Estimated       float64 `json:"estimated"`
	LoanOrigination float64 `json:"loanOrigination"`
	Appraisal       float64 `json:"appraisal"`
	Inspection      float64 `json:"inspection"`
	TitleInsurance  float64 `json:"titleInsurance"`
	Other           float64 `json:"other"`
}

// CashRequirements aggregates upfront cash figures for a buyer.
type CashRequirements struct {
	TotalCashNeeded float64 `json:"totalCashNeeded"`
	MonthsOfSavings int     `json:"monthsOfSavingsRequired"`
}

// CostProjection is an aggregate ownership-cost line: current monthly and
// annual figures plus the five-year total. Totals only, never a
// year-by-year series, to keep result payloads bounded.
type CostProjection struct {
	Monthly       float64 `json:"monthly"`
	Annual        float64 `json:"annual"`
	FiveYearTotal float64 `json:"fiveYearTotal"`
}

// OperatingExpenses summarizes a rental's operating cost load.
type OperatingExpenses struct {
	Monthly float64 `json:"monthly"`
	Annual  float64 `json:"annual"`
}

// FiveYearSummary carries the five-year aggregates for an investment.
// All figures are totals over the hold, never per-year series.
type FiveYearSummary struct {
	TotalCashFlow     float64 `json:"totalCashFlow"`
	TotalAppreciation float64 `json:"totalAppreciation"`
	TotalEquity       float64 `json:"totalEquity"`
	TotalReturn       float64 `json:"totalReturn"`
	AvgAnnualReturn   float64 `json:"avgAnnualReturn"`
}

// InvestmentResult is the investor-side calculator output. NOI, cash flow
// and debt service are monthly figures; rates are percentages.
// DSCRUndefined is set instead of reporting a division fault when the
// property carries no debt service.
type InvestmentResult struct {
	OperatingExpenses  OperatingExpenses `json:"operatingExpenses"`
	FiveYear           FiveYearSummary   `json:"fiveYearSummary"`
	NOI                float64           `json:"monthlyNOI"`
	MonthlyCashFlow    float64           `json:"monthlyCashFlow"`
	AnnualCashFlow     float64           `json:"annualCashFlow"`
	MonthlyDebtService float64           `json:"monthlyDebtService"`
	CapRate            float64           `json:"capRate"`
	CashOnCashReturn   float64           `json:"cashOnCashReturn"`
	DSCR               float64           `json:"dscr"`
	TotalCashRequired  float64           `json:"totalCashRequired"`
	DSCRUndefined      bool              `json:"dscrUndefined,omitempty"`
}

// PriceVsEstimate compares list price against the market estimate.
type PriceVsEstimate struct {
	Verdict    string  `json:"verdict"`
	Difference float64 `json:"difference"`
	Percentage float64 `json:"percentage"`
}

// MarketSummary is the heuristic market read for a listing.
type MarketSummary struct {
	DaysOnMarketStatus string          `json:"daysOnMarketStatus"`
	Message            string          `json:"message"`
	PriceVsEstimate    PriceVsEstimate `json:"priceVsEstimate"`
	PricePerSqft       float64         `json:"pricePerSqft"`
	MarketAvgPerSqft   float64         `json:"marketAvgPricePerSqft"`
}

// RiskAssessment combines weighted sub-scores into an overall band.
// Sub-scores are each in [0,100].
type RiskAssessment struct {
	Overall        string   `json:"overallRisk"`
	Factors        []string `json:"factors"`
	FinancialScore int      `json:"financialRiskScore"`
	MarketScore    int      `json:"marketRiskScore"`
	LiquidityScore int      `json:"liquidityRiskScore"`
}

// Recommendation is the rule-based negotiation guidance.
type Recommendation struct {
	Urgency        string   `json:"urgency"`
	Tactics        []string `json:"tactics"`
	SuggestedOffer float64  `json:"suggestedOffer"`
}

// AnalysisResult is the envelope returned for every analysis. Score, level,
// monthlyPayment and dtiRatio mirror the active profile variant; the
// variant-specific blocks are present only when that calculator ran.
// The free-text fields (insights, warnings, advisorMessage) are opaque to
// the calculators; only their shape is guaranteed.
type AnalysisResult struct {
	Level                string                `json:"level"`
	AdvisorMessage       string                `json:"advisorMessage"`
	Insights             []string              `json:"insights"`
	Warnings             []string              `json:"warnings"`
	DownPaymentOptions   []DownPaymentScenario `json:"downPaymentOptions,omitempty"`
	Affordability        *AffordabilityResult  `json:"affordability,omitempty"`
	Investment           *InvestmentResult     `json:"investment,omitempty"`
	ClosingCosts         *ClosingCosts         `json:"closingCosts,omitempty"`
	CashRequirements     *CashRequirements     `json:"cashRequirements,omitempty"`
	MonthlyPayment       PaymentBreakdown      `json:"monthlyPayment"`
	Market               MarketSummary         `json:"market"`
	Risk                 RiskAssessment        `json:"risk"`
	Recommendation       Recommendation        `json:"recommendation"`
	InsuranceBreakdown   CostProjection        `json:"insuranceBreakdown"`
	PropertyTaxBreakdown CostProjection        `json:"propertyTaxBreakdown"`
	HOAFeesBreakdown     CostProjection        `json:"hoaFeesBreakdown"`
	MaintenanceBreakdown CostProjection        `json:"maintenanceBreakdown"`
	DTIRatio             float64               `json:"dtiRatio"`
	Score                int                   `json:"score"`
}

// NormalizeShape guarantees the structural contract of the free-text
// fields: arrays present and non-nil. Content is left untouched.
func (a *AnalysisResult) NormalizeShape() {
	if a.Insights == nil {
		a.Insights = []string{}
	}
	if a.Warnings == nil {
		a.Warnings = []string{}
	}
	if a.Risk.Factors == nil {
		a.Risk.Factors = []string{}
	}
	if a.Recommendation.Tactics == nil {
		a.Recommendation.Tactics = []string{}
	}
}
