package engine

import (
	"fmt"
	"math"

	"github.com/homevest/api/internal/models"
)

// RentalParams are the underwriting assumptions the investment calculator
// runs with. They come from an investor profile, or from buyer defaults
// when a buyer analysis opportunistically includes rent-vs-buy context.
type RentalParams struct {
	DownPaymentPct float64 // percent of price
	InterestRate   float64 // annual percent
	TermYears      int
	VacancyRate    float64 // fraction, e.g. 0.07
	MaintenancePct float64 // percent of price per year
}

// ParamsFromInvestor maps an investor profile onto underwriting params,
// filling unset vacancy/maintenance with the standard defaults.
func ParamsFromInvestor(inv *models.InvestorProfile) RentalParams {
	p := RentalParams{
		DownPaymentPct: inv.DownPaymentPercent,
		InterestRate:   inv.InterestRate,
		TermYears:      inv.LoanTermYears,
		VacancyRate:    inv.VacancyRate,
		MaintenancePct: inv.MaintenancePercent,
	}
	if p.VacancyRate <= 0 {
		p.VacancyRate = defaultVacancyRate
	}
	if p.MaintenancePct <= 0 {
		p.MaintenancePct = defaultMaintenancePct
	}
	return p
}

// ParamsFromBuyer derives rental context for a buyer analysis from the
// buyer's financing terms plus default rental assumptions.
func ParamsFromBuyer(property *models.PropertyInput, buyer *models.BuyerProfile) RentalParams {
	return RentalParams{
		DownPaymentPct: DownPaymentFraction(buyer.DownPayment, property.Price) * 100,
		InterestRate:   buyer.InterestRate,
		TermYears:      buyer.LoanTermYears,
		VacancyRate:    defaultVacancyRate,
		MaintenancePct: defaultMaintenancePct,
	}
}

// GrossMonthlyRent uses the market rent estimate when present, otherwise
// the 1%-of-price floor heuristic.
func GrossMonthlyRent(property *models.PropertyInput) float64 {
	if property.EstimatedRent != nil && *property.EstimatedRent > 0 {
		return *property.EstimatedRent
	}
	return property.Price * rentFallbackRate
}

// Investment runs the rental underwriting: NOI, cap rate, cash-on-cash,
// DSCR and the five-year aggregates. A property carried free and clear
// (no debt service) reports DSCR as undefined rather than faulting.
func Investment(property *models.PropertyInput, p RentalParams) (*models.InvestmentResult, error) {
	if property.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %.2f", ErrInvalidInput, property.Price)
	}
	if p.DownPaymentPct <= 0 || p.DownPaymentPct > 100 {
		return nil, fmt.Errorf("%w: down payment percent must be in (0,100], got %.2f", ErrInvalidInput, p.DownPaymentPct)
	}

	grossRent := GrossMonthlyRent(property)
	effectiveIncome := grossRent * (1 - p.VacancyRate)

	opEx := monthlyTax(property.Price) +
		property.Price*investorInsuranceRate/12 +
		property.HOA() +
		property.Price*p.MaintenancePct/100/12 +
		grossRent*managementFeeRate

	noi := effectiveIncome - opEx

	downPayment := property.Price * p.DownPaymentPct / 100
	loanAmount := property.Price - downPayment
	debtService := MonthlyPayment(loanAmount, p.InterestRate, p.TermYears)

	monthlyCashFlow := noi - debtService
	annualCashFlow := monthlyCashFlow * 12
	totalCash := downPayment + property.Price*closingCostRate

	result := &models.InvestmentResult{
		NOI:                roundDollars(noi),
		MonthlyCashFlow:    roundDollars(monthlyCashFlow),
		AnnualCashFlow:     roundDollars(annualCashFlow),
		MonthlyDebtService: roundDollars(debtService),
		CapRate:            roundTo(noi*12/property.Price*100, 1),
		CashOnCashReturn:   roundTo(annualCashFlow/totalCash*100, 1),
		TotalCashRequired:  roundDollars(totalCash),
		OperatingExpenses: models.OperatingExpenses{
			Monthly: roundDollars(opEx),
			Annual:  roundDollars(opEx * 12),
		},
	}

	if debtService > 0 {
		result.DSCR = roundTo(noi*12/(debtService*12), 2)
	} else {
		result.DSCRUndefined = true
	}

	result.FiveYear = fiveYearSummary(property.Price, effectiveIncome, opEx, debtService, loanAmount, p, totalCash)
	return result, nil
}

// fiveYearSummary projects aggregate totals over the standard hold: cash
// flow with rent escalation, conservative compounding appreciation, and
// equity from the amortization schedule. Totals only, never a year series.
func fiveYearSummary(price, effectiveIncome, opEx, debtService, loanAmount float64, p RentalParams, totalCash float64) models.FiveYearSummary {
	var totalCashFlow float64
	for year := 0; year < projectionYears; year++ {
		income := effectiveIncome * math.Pow(1+rentEscalationRate, float64(year))
		totalCashFlow += (income - opEx - debtService) * 12
	}

	appreciation := price * (math.Pow(1+appreciationRate, projectionYears) - 1)
	equity := PrincipalPaid(loanAmount, p.InterestRate, p.TermYears, projectionYears*12)
	totalReturn := totalCashFlow + appreciation + equity

	avgAnnual := 0.0
	if totalCash > 0 {
		avgAnnual = totalReturn / totalCash / projectionYears * 100
	}

	return models.FiveYearSummary{
		TotalCashFlow:     roundDollars(totalCashFlow),
		TotalAppreciation: roundDollars(appreciation),
		TotalEquity:       roundDollars(equity),
		TotalReturn:       roundDollars(totalReturn),
		AvgAnnualReturn:   roundTo(avgAnnual, 1),
	}
}

// InvestmentScore grades an investment result against the investor's
// targets on the fixed 0-100 rubric.
func InvestmentScore(result *models.InvestmentResult, inv *models.InvestorProfile) (int, string) {
	score := 0
	if result.MonthlyCashFlow > 200 {
		score += 30
	}
	targetROI := inv.TargetROI
	if targetROI <= 0 {
		targetROI = 8
	}
	if result.CashOnCashReturn > targetROI {
		score += 25
	}
	if !result.DSCRUndefined && result.DSCR > 1.25 {
		score += 20
	}
	if result.CapRate > 6 {
		score += 15
	}
	if result.MonthlyCashFlow >= 0 && (result.DSCRUndefined || result.DSCR >= 1.0) {
		score += 10
	}

	level := models.LevelPoor
	switch {
	case score >= 80:
		level = models.LevelExcellent
	case score >= 60:
		level = models.LevelGood
	case score >= 40:
		level = models.LevelMarginal
	}
	return score, level
}
