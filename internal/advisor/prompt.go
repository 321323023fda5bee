package advisor

import (
	"fmt"
	"strings"

	"github.com/homevest/api/internal/models"
)

const systemPrompt = `You are an expert home buying and real estate investment advisor with deep knowledge of mortgages, rental underwriting and personal finance. You are given a property, a user's financial profile, and the numeric results of a deterministic analysis. Write the narrative layer only: do not recompute or contradict the numbers you are given.

Return a JSON object with exactly this structure and nothing else (no markdown fences):
{
  "advisorMessage": "2-3 sentence personalized verdict with an actionable next step",
  "insights": ["3-5 headline findings as short strings"],
  "warnings": ["critical concerns as short strings, empty array if none"]
}`

// BuildPrompt serializes the property, profile and computed figures into
// the user prompt for the generator.
func BuildPrompt(property *models.PropertyInput, profile *models.UserFinancialProfile, result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("## PROPERTY:\n")
	fmt.Fprintf(&b, "- Price: $%.0f\n", property.Price)
	fmt.Fprintf(&b, "- Bedrooms: %d, Bathrooms: %.1f\n", property.Bedrooms, property.Bathrooms)
	fmt.Fprintf(&b, "- Living Area: %.0f sqft\n", property.LivingArea)
	fmt.Fprintf(&b, "- Zip: %s\n", property.ZipCode)
	if property.EstimatedValue != nil {
		fmt.Fprintf(&b, "- Market Estimate: $%.0f\n", *property.EstimatedValue)
	}
	if property.EstimatedRent != nil {
		fmt.Fprintf(&b, "- Rent Estimate: $%.0f/month\n", *property.EstimatedRent)
	}
	if property.DaysOnMarket != nil {
		fmt.Fprintf(&b, "- Days on Market: %d\n", *property.DaysOnMarket)
	}

	b.WriteString("\n## USER PROFILE:\n")
	switch profile.Kind {
	case models.ProfileBuyer:
		buyer := profile.Buyer
		fmt.Fprintf(&b, "- Mode: homebuyer\n")
		fmt.Fprintf(&b, "- Annual Income: $%.0f\n", buyer.AnnualIncome)
		fmt.Fprintf(&b, "- Monthly Debt: $%.0f\n", buyer.MonthlyDebt)
		fmt.Fprintf(&b, "- Available Savings: $%.0f\n", buyer.AvailableSavings)
		fmt.Fprintf(&b, "- Max Monthly Budget: $%.0f\n", buyer.MaxMonthlyBudget)
		fmt.Fprintf(&b, "- Risk Comfort: %s\n", buyer.RiskComfort)
		fmt.Fprintf(&b, "- Time Horizon: %s years\n", buyer.TimeHorizon)
	case models.ProfileInvestor:
		investor := profile.Investor
		fmt.Fprintf(&b, "- Mode: investor\n")
		fmt.Fprintf(&b, "- Available Capital: $%.0f\n", investor.AvailableCapital)
		fmt.Fprintf(&b, "- Target Cash Flow: $%.0f/month\n", investor.TargetCashFlow)
		fmt.Fprintf(&b, "- Target ROI: %.1f%%\n", investor.TargetROI)
		fmt.Fprintf(&b, "- Risk Tolerance: %s\n", investor.RiskTolerance)
	}

	b.WriteString("\n## COMPUTED ANALYSIS:\n")
	fmt.Fprintf(&b, "- Score: %d/100 (%s)\n", result.Score, result.Level)
	fmt.Fprintf(&b, "- Total Monthly Payment: $%.0f\n", result.MonthlyPayment.Total)
	if result.DTIRatio > 0 {
		fmt.Fprintf(&b, "- DTI Ratio: %.1f%%\n", result.DTIRatio)
	}
	if result.Investment != nil {
		inv := result.Investment
		fmt.Fprintf(&b, "- Monthly Cash Flow: $%.0f\n", inv.MonthlyCashFlow)
		fmt.Fprintf(&b, "- Cap Rate: %.1f%%, Cash-on-Cash: %.1f%%\n", inv.CapRate, inv.CashOnCashReturn)
		if !inv.DSCRUndefined {
			fmt.Fprintf(&b, "- DSCR: %.2f\n", inv.DSCR)
		}
	}
	fmt.Fprintf(&b, "- Market Verdict: %s (%.1f%% vs estimate)\n",
		result.Market.PriceVsEstimate.Verdict, result.Market.PriceVsEstimate.Percentage)
	fmt.Fprintf(&b, "- Days-on-Market Status: %s\n", result.Market.DaysOnMarketStatus)
	fmt.Fprintf(&b, "- Overall Risk: %s\n", result.Risk.Overall)

	b.WriteString("\nWrite the advisor narrative for this analysis. Return ONLY valid JSON, no markdown formatting.")
	return b.String()
}
