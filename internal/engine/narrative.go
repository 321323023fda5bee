package engine

import (
	"fmt"
	"math"

	"github.com/homevest/api/internal/models"
)

// projectFiveYears totals an annual cost over the standard hold with the
// rent-escalation inflation factor applied each year.
func projectFiveYears(annual float64) float64 {
	var total float64
	for year := 0; year < projectionYears; year++ {
		total += annual * math.Pow(1+rentEscalationRate, float64(year))
	}
	return roundDollars(total)
}

// costProjection builds the aggregate line for one monthly cost.
func costProjection(monthly float64) models.CostProjection {
	return models.CostProjection{
		Monthly:       roundDollars(monthly),
		Annual:        roundDollars(monthly * 12),
		FiveYearTotal: projectFiveYears(monthly * 12),
	}
}

// buyerAdvisorMessage writes the deterministic advisor summary for a buyer
// analysis. The external generator may later replace it; the engine always
// produces a complete one locally.
func buyerAdvisorMessage(aff *models.AffordabilityResult, market models.MarketSummary) string {
	switch aff.Level {
	case models.LevelAffordable:
		comfort := "this home works well"
		room := "adequate"
		if aff.DTIRatio < dtiComfortable {
			comfort = "this home fits comfortably"
			room = "plenty of"
		}
		return fmt.Sprintf("Great news, %s within your budget! With a DTI of %.1f%%, you'll have %s breathing room. The property looks %s relative to its market estimate.",
			comfort, aff.DTIRatio, room, lower(market.PriceVsEstimate.Verdict))
	case models.LevelStretch:
		return fmt.Sprintf("This home is a stretch but manageable with careful planning. Your DTI of %.1f%% is on the higher side. %s I recommend building a larger emergency fund before committing, and make sure you're comfortable with the monthly payment of $%.0f.",
			aff.DTIRatio, market.Message, aff.MonthlyPayment.Total)
	default:
		return fmt.Sprintf("I'd recommend looking at more affordable options. With a DTI of %.1f%%, this home would put significant strain on your finances. A monthly payment of $%.0f exceeds your comfortable budget.",
			aff.DTIRatio, aff.MonthlyPayment.Total)
	}
}

// investorAdvisorMessage writes the deterministic summary for an investor
// analysis.
func investorAdvisorMessage(inv *models.InvestmentResult, level string, market models.MarketSummary) string {
	stance := "worth a closer look"
	switch level {
	case models.LevelExcellent:
		stance = "a strong candidate"
	case models.LevelPoor:
		stance = "hard to justify at this price"
	}
	cashFlow := fmt.Sprintf("$%.0f/month in cash flow", inv.MonthlyCashFlow)
	if inv.MonthlyCashFlow < 0 {
		cashFlow = fmt.Sprintf("negative cash flow of $%.0f/month", -inv.MonthlyCashFlow)
	}
	return fmt.Sprintf("This property is %s: %s at a %.1f%% cap rate and %.1f%% cash-on-cash return. The listing looks %s relative to its market estimate. %s",
		stance, cashFlow, inv.CapRate, inv.CashOnCashReturn, lower(market.PriceVsEstimate.Verdict), market.Message)
}

// buyerInsights extracts the headline findings for a buyer analysis.
func buyerInsights(aff *models.AffordabilityResult, market models.MarketSummary, investment *models.InvestmentResult) []string {
	insights := []string{}
	if market.PriceVsEstimate.Verdict == models.VerdictUnderpriced {
		insights = append(insights, fmt.Sprintf("Great value! Property is %.1f%% below its market estimate", math.Abs(market.PriceVsEstimate.Percentage)))
	}
	if market.DaysOnMarketStatus == models.MarketFastMoving {
		insights = append(insights, "Hot property! Moving faster than average")
	}
	if aff.Score >= 80 {
		insights = append(insights, "Excellent affordability match for your budget")
	}
	if investment != nil && investment.CashOnCashReturn > 8 {
		insights = append(insights, fmt.Sprintf("Strong investment potential with a %.1f%% cash-on-cash return", investment.CashOnCashReturn))
	}
	return insights
}

// investorInsights extracts the headline findings for an investor analysis.
func investorInsights(inv *models.InvestmentResult, market models.MarketSummary) []string {
	insights := []string{}
	if inv.MonthlyCashFlow > 200 {
		insights = append(insights, fmt.Sprintf("Positive cash flow of $%.0f/month after debt service", inv.MonthlyCashFlow))
	}
	if inv.CapRate > 6 {
		insights = append(insights, fmt.Sprintf("Cap rate of %.1f%% beats the 6%% benchmark", inv.CapRate))
	}
	if !inv.DSCRUndefined && inv.DSCR > 1.25 {
		insights = append(insights, fmt.Sprintf("DSCR of %.2f gives comfortable lending headroom", inv.DSCR))
	}
	if market.PriceVsEstimate.Verdict == models.VerdictUnderpriced {
		insights = append(insights, fmt.Sprintf("Listed %.1f%% below its market estimate", math.Abs(market.PriceVsEstimate.Percentage)))
	}
	return insights
}

// buyerWarnings flags the critical concerns for a buyer analysis.
func buyerWarnings(aff *models.AffordabilityResult, risk models.RiskAssessment, market models.MarketSummary, cash *models.CashRequirements) []string {
	warnings := []string{}
	if aff.DTIRatio > dtiCeiling {
		warnings = append(warnings, "High debt-to-income ratio may affect loan approval")
	}
	if risk.Overall == models.RiskHigh {
		warnings = append(warnings, "High financial risk - consider building more savings")
	}
	if market.PricePerSqft > market.MarketAvgPerSqft*overpricedPerSqftFactor {
		warnings = append(warnings, "Property priced above market average")
	}
	if cash != nil && cash.MonthsOfSavings > 12 {
		warnings = append(warnings, "Significant savings required - may take over a year")
	}
	return warnings
}

// investorWarnings flags the critical concerns for an investor analysis.
func investorWarnings(inv *models.InvestmentResult, target *models.InvestorProfile) []string {
	warnings := []string{}
	if inv.MonthlyCashFlow < 0 {
		warnings = append(warnings, "Negative monthly cash flow; the property does not carry itself")
	}
	if !inv.DSCRUndefined && inv.DSCR < 1.0 {
		warnings = append(warnings, "DSCR below 1.0; NOI does not cover debt service")
	}
	if target.TargetCashFlow > 0 && inv.MonthlyCashFlow < target.TargetCashFlow {
		warnings = append(warnings, fmt.Sprintf("Cash flow falls short of your $%.0f/month target", target.TargetCashFlow))
	}
	if target.TargetROI > 0 && inv.CashOnCashReturn < target.TargetROI {
		warnings = append(warnings, fmt.Sprintf("Cash-on-cash return is below your %.1f%% target", target.TargetROI))
	}
	return warnings
}

func lower(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
