// Package engine implements the deterministic half of the advisory
// pipeline: mortgage, affordability, investment and risk calculations that
// must be reproducible without any external generator. Every function here
// is pure and synchronous over immutable inputs; invocations share no
// state and may run concurrently without coordination.
package engine

import (
	"fmt"

	"github.com/homevest/api/internal/models"
)

// Analyze runs the full calculator pipeline for one property and profile.
// This is the single dispatch point on the profile variant; everything
// below it works on concrete buyer or investor inputs.
func Analyze(property *models.PropertyInput, profile *models.UserFinancialProfile) (*models.AnalysisResult, error) {
	if property == nil || profile == nil {
		return nil, fmt.Errorf("%w: property and profile are required", ErrInvalidInput)
	}
	if property.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %.2f", ErrInvalidInput, property.Price)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteProfile, err)
	}

	switch profile.Kind {
	case models.ProfileBuyer:
		return analyzeBuyer(property, profile.Buyer)
	case models.ProfileInvestor:
		return analyzeInvestor(property, profile.Investor)
	default:
		return nil, fmt.Errorf("%w: unknown profile kind %q", ErrIncompleteProfile, profile.Kind)
	}
}

func analyzeBuyer(property *models.PropertyInput, buyer *models.BuyerProfile) (*models.AnalysisResult, error) {
	affordability, err := Affordability(property, buyer)
	if err != nil {
		return nil, err
	}

	market := MarketRead(property)
	risk := AssessRisk(affordability.DTIRatio, market)
	cash := CashRequirements(property, buyer)

	// Rent-vs-buy context rides along when the buyer's terms admit a loan.
	var investment *models.InvestmentResult
	if params := ParamsFromBuyer(property, buyer); params.DownPaymentPct > 0 {
		if inv, invErr := Investment(property, params); invErr == nil {
			investment = inv
		}
	}

	result := &models.AnalysisResult{
		Score:                affordability.Score,
		Level:                affordability.Level,
		MonthlyPayment:       affordability.MonthlyPayment,
		DTIRatio:             affordability.DTIRatio,
		Affordability:        affordability,
		DownPaymentOptions:   DownPaymentScenarios(property, buyer),
		ClosingCosts:         ClosingCostEstimate(property.Price),
		CashRequirements:     cash,
		Investment:           investment,
		Market:               market,
		Risk:                 risk,
		Recommendation:       Recommend(property, market),
		InsuranceBreakdown:   costProjection(monthlyInsurance(property.Price)),
		PropertyTaxBreakdown: costProjection(monthlyTax(property.Price)),
		HOAFeesBreakdown:     costProjection(property.HOA()),
		MaintenanceBreakdown: costProjection(property.Price * defaultMaintenancePct / 100 / 12),
		AdvisorMessage:       buyerAdvisorMessage(affordability, market),
		Insights:             buyerInsights(affordability, market, investment),
		Warnings:             buyerWarnings(affordability, risk, market, cash),
	}
	result.NormalizeShape()
	return result, nil
}

func analyzeInvestor(property *models.PropertyInput, investor *models.InvestorProfile) (*models.AnalysisResult, error) {
	params := ParamsFromInvestor(investor)
	investment, err := Investment(property, params)
	if err != nil {
		return nil, err
	}

	score, level := InvestmentScore(investment, investor)
	market := MarketRead(property)
	// Investors carry no DTI; the financial sub-score stays at its base and
	// cash-flow concerns surface through warnings instead.
	risk := AssessRisk(0, market)

	loanAmount := property.Price * (1 - params.DownPaymentPct/100)
	principal, interest := FirstPaymentSplit(loanAmount, params.InterestRate, params.TermYears)
	insurance := property.Price * investorInsuranceRate / 12
	payment := models.PaymentBreakdown{
		Principal: roundDollars(principal),
		Interest:  roundDollars(interest),
		Tax:       roundDollars(monthlyTax(property.Price)),
		Insurance: roundDollars(insurance),
		HOA:       property.HOA(),
	}
	payment.Total = payment.Principal + payment.Interest + payment.Tax + payment.Insurance + payment.HOA

	result := &models.AnalysisResult{
		Score:                score,
		Level:                level,
		MonthlyPayment:       payment,
		Investment:           investment,
		Market:               market,
		Risk:                 risk,
		Recommendation:       Recommend(property, market),
		InsuranceBreakdown:   costProjection(insurance),
		PropertyTaxBreakdown: costProjection(monthlyTax(property.Price)),
		HOAFeesBreakdown:     costProjection(property.HOA()),
		MaintenanceBreakdown: costProjection(property.Price * params.MaintenancePct / 100 / 12),
		AdvisorMessage:       investorAdvisorMessage(investment, level, market),
		Insights:             investorInsights(investment, market),
		Warnings:             investorWarnings(investment, investor),
	}
	result.NormalizeShape()
	return result, nil
}
