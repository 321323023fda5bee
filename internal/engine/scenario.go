package engine

import (
	"fmt"

	"github.com/homevest/api/internal/models"
)

// standardDownPercents is the sweep the scenario generator always runs,
// ascending.
var standardDownPercents = []float64{5, 10, 20}

// DownPaymentScenarios recomputes loan, PMI and payment for each standard
// down-payment percentage and attaches a rule-based recommendation. Pure
// function of its inputs; entries are ordered ascending by percentage and
// never mutated after generation.
func DownPaymentScenarios(property *models.PropertyInput, buyer *models.BuyerProfile) []models.DownPaymentScenario {
	tax := monthlyTax(property.Price)
	insurance := monthlyInsurance(property.Price)

	scenarios := make([]models.DownPaymentScenario, 0, len(standardDownPercents))
	for _, percent := range standardDownPercents {
		fraction := percent / 100
		downPayment := property.Price * fraction
		loanAmount := property.Price - downPayment
		pmi := monthlyPMI(loanAmount, fraction, buyer.IncludePMI)
		payment := MonthlyPayment(loanAmount, buyer.InterestRate, buyer.LoanTermYears) + tax + insurance + pmi

		scenarios = append(scenarios, models.DownPaymentScenario{
			Percentage:     percent,
			Amount:         roundDollars(downPayment),
			MonthlyPayment: roundDollars(payment),
			PMI:            roundDollars(pmi),
			Recommendation: scenarioRecommendation(percent, downPayment, buyer.AvailableSavings),
		})
	}
	return scenarios
}

// scenarioRecommendation picks the advice string for one sweep entry.
// Savings shortfall wins over everything else.
func scenarioRecommendation(percent, downPayment, savings float64) string {
	if downPayment > savings {
		return fmt.Sprintf("Need $%.0f more", downPayment-savings)
	}
	switch percent {
	case 20:
		return "Recommended - No PMI"
	case 10:
		return "Good balance"
	default:
		return "Lower upfront, higher monthly"
	}
}
