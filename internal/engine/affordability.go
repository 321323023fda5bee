package engine

import (
	"fmt"
	"math"

	"github.com/homevest/api/internal/models"
)

// DownPaymentFraction resolves the profile's down-payment preference
// against a price: values below 1 are already fractions, anything else is
// an absolute dollar amount.
func DownPaymentFraction(preference, price float64) float64 {
	if preference > 0 && preference < 1 {
		return preference
	}
	return preference / price
}

// monthlyInsurance estimates homeowners insurance by linear scaling from
// the reference price point.
func monthlyInsurance(price float64) float64 {
	return math.Round(price / insuranceReferencePrice * insuranceMonthlyAtReference)
}

// monthlyTax estimates property tax from the annual rate.
func monthlyTax(price float64) float64 {
	return price * propertyTaxAnnualRate / 12
}

// monthlyPMI returns the PMI charge for a loan, zero at or above the 20%
// down cutoff regardless of the opt-in flag.
func monthlyPMI(loanAmount, downFraction float64, includePMI bool) float64 {
	if downFraction >= pmiCutoffFraction || !includePMI {
		return 0
	}
	return loanAmount * pmiAnnualRate / 12
}

// Affordability runs the buyer-side calculator: payment breakdown, DTI,
// score and level. Inputs are validated before any arithmetic; a zero
// income reports Too Expensive deterministically instead of dividing by it.
func Affordability(property *models.PropertyInput, buyer *models.BuyerProfile) (*models.AffordabilityResult, error) {
	if property.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %.2f", ErrInvalidInput, property.Price)
	}
	if buyer.DownPayment < 0 {
		return nil, fmt.Errorf("%w: down payment must not be negative", ErrInvalidInput)
	}
	if buyer.DownPayment >= 1 && buyer.DownPayment >= property.Price {
		return nil, fmt.Errorf("%w: down payment %.2f is at or above price %.2f", ErrInvalidInput, buyer.DownPayment, property.Price)
	}

	downFraction := DownPaymentFraction(buyer.DownPayment, property.Price)
	downPayment := property.Price * downFraction
	loanAmount := property.Price - downPayment

	principal, interest := FirstPaymentSplit(loanAmount, buyer.InterestRate, buyer.LoanTermYears)
	tax := monthlyTax(property.Price)
	insurance := monthlyInsurance(property.Price)
	hoa := property.HOA()
	pmi := monthlyPMI(loanAmount, downFraction, buyer.IncludePMI)
	total := principal + interest + tax + insurance + hoa + pmi

	breakdown := models.PaymentBreakdown{
		Total:     roundDollars(total),
		Principal: roundDollars(principal),
		Interest:  roundDollars(interest),
		Tax:       roundDollars(tax),
		Insurance: insurance,
		HOA:       hoa,
		PMI:       roundDollars(pmi),
	}

	if buyer.AnnualIncome <= 0 {
		return &models.AffordabilityResult{
			Score:          0,
			Level:          models.LevelTooExpensive,
			MonthlyPayment: breakdown,
			DTIRatio:       0,
		}, nil
	}

	monthlyIncome := buyer.AnnualIncome / 12
	dti := (buyer.MonthlyDebt + total) / monthlyIncome * 100

	score := dtiScore(dti)
	if buyer.MaxMonthlyBudget > 0 && total > buyer.MaxMonthlyBudget {
		overagePct := (total - buyer.MaxMonthlyBudget) / buyer.MaxMonthlyBudget * 100
		score -= overagePct * 0.5
	}
	rounded := int(math.Round(clamp(score, 0, 100)))

	return &models.AffordabilityResult{
		Score:          rounded,
		Level:          affordabilityLevel(rounded, buyer.RiskComfort),
		MonthlyPayment: breakdown,
		DTIRatio:       roundTo(dti, 1),
	}, nil
}

// dtiScore maps a DTI percentage onto [0,100]. The curve is continuous and
// monotone nonincreasing: full-credit glide down to 70 at the 36% comfort
// line, linear partial credit through 43%, then a steep 3-points-per-point
// slope that can reach zero.
func dtiScore(dti float64) float64 {
	switch {
	case dti <= 0:
		return 100
	case dti <= dtiComfortable:
		return 70 + (dtiComfortable-dti)/dtiComfortable*30
	case dti <= dtiCeiling:
		return 70 - (dti-dtiComfortable)/(dtiCeiling-dtiComfortable)*30
	default:
		return math.Max(0, 40-(dti-dtiCeiling)*3)
	}
}

// affordabilityLevel applies the risk-band-dependent thresholds.
func affordabilityLevel(score int, band models.RiskBand) string {
	t, ok := levelThresholds[string(band.Normalize())]
	if !ok {
		t = levelThresholds["balanced"]
	}
	switch {
	case score >= t.affordable:
		return models.LevelAffordable
	case score >= t.stretch:
		return models.LevelStretch
	default:
		return models.LevelTooExpensive
	}
}

// ClosingCostEstimate breaks the 3% closing estimate into its usual lines.
func ClosingCostEstimate(price float64) *models.ClosingCosts {
	total := price * closingCostRate
	return &models.ClosingCosts{
		Estimated:       roundDollars(total),
		LoanOrigination: roundDollars(total * 0.4),
		Appraisal:       500,
		Inspection:      400,
		TitleInsurance:  roundDollars(total * 0.3),
		Other:           roundDollars(total*0.3) - 900,
	}
}

// CashRequirements totals the upfront cash and, when savings fall short,
// estimates how many months of saving close the gap.
func CashRequirements(property *models.PropertyInput, buyer *models.BuyerProfile) *models.CashRequirements {
	downPayment := property.Price * DownPaymentFraction(buyer.DownPayment, property.Price)
	totalNeeded := downPayment + property.Price*closingCostRate

	months := 0
	if buyer.AnnualIncome > 0 && totalNeeded > buyer.AvailableSavings {
		capacity := buyer.AnnualIncome / 12 * savingsCapacityRate
		months = int(math.Ceil((totalNeeded - buyer.AvailableSavings) / capacity))
	}
	return &models.CashRequirements{
		TotalCashNeeded: roundDollars(totalNeeded),
		MonthsOfSavings: months,
	}
}
