package models

import "fmt"

// ProfileKind selects which side of the UserFinancialProfile union is active.
type ProfileKind string

const (
	ProfileBuyer    ProfileKind = "buyer"
	ProfileInvestor ProfileKind = "investor"
)

// RiskBand is the user's stated risk comfort. Buyer onboarding uses
// conservative/balanced/aggressive; investor onboarding uses
// conservative/moderate/aggressive. "moderate" is normalized to balanced.
type RiskBand string

const (
	RiskConservative RiskBand = "conservative"
	RiskBalanced     RiskBand = "balanced"
	RiskAggressive   RiskBand = "aggressive"
)

// Normalize maps investor-flavored band names onto the canonical three.
func (r RiskBand) Normalize() RiskBand {
	if r == "moderate" {
		return RiskBalanced
	}
	return r
}

// BuyerProfile holds the financial picture of a homebuyer.
// DownPayment follows the onboarding convention: a value below 1 is a
// fraction of the purchase price, anything else is an absolute dollar amount.
type BuyerProfile struct {
	AnnualIncome     float64  `json:"annualIncome"`
	MonthlyDebt      float64  `json:"monthlyDebt"`
	AvailableSavings float64  `json:"availableSavings"`
	MaxMonthlyBudget float64  `json:"maxMonthlyBudget"`
	DownPayment      float64  `json:"downPayment"`
	InterestRate     float64  `json:"interestRate"`
	LoanTermYears    int      `json:"loanTerm"`
	IncludePMI       bool     `json:"includePMI"`
	CreditScore      string   `json:"creditScore"`
	RiskComfort      RiskBand `json:"riskComfort"`
	TimeHorizon      string   `json:"timeHorizon"`
}

// InvestorProfile holds the financial picture of a rental-property investor.
// DownPaymentPercent and the rate are percentages (20 means 20%).
type InvestorProfile struct {
	AvailableCapital   float64  `json:"availableCapital"`
	DownPaymentPercent float64  `json:"downPaymentPercent"`
	InterestRate       float64  `json:"interestRate"`
	LoanTermYears      int      `json:"loanTerm"`
	TargetCashFlow     float64  `json:"targetCashFlow"`
	TargetROI          float64  `json:"targetROI"`
	HoldPeriodYears    int      `json:"holdPeriod"`
	RiskTolerance      RiskBand `json:"riskTolerance"`
	VacancyRate        float64  `json:"vacancyRate"`
	MaintenancePercent float64  `json:"maintenancePercent"`
}

// UserFinancialProfile is a tagged union over the two onboarding variants.
// Exactly one of Buyer or Investor is set, selected by Kind. The single
// dispatch point on the variant lives in the engine; nothing below it
// branches on Kind.
type UserFinancialProfile struct {
	Buyer    *BuyerProfile    `json:"buyer,omitempty"`
	Investor *InvestorProfile `json:"investor,omitempty"`
	Kind     ProfileKind      `json:"kind"`
}

// Validate checks that the union is well-formed: the kind is known and the
// matching variant (and only it) is populated with its required fields.
// Missing fields are named explicitly so callers can surface them.
func (u *UserFinancialProfile) Validate() error {
	switch u.Kind {
	case ProfileBuyer:
		if u.Buyer == nil {
			return fmt.Errorf("profile kind is %q but buyer fields are absent", u.Kind)
		}
		if missing := u.Buyer.missingFields(); len(missing) > 0 {
			return fmt.Errorf("incomplete buyer profile, missing: %v", missing)
		}
		return nil
	case ProfileInvestor:
		if u.Investor == nil {
			return fmt.Errorf("profile kind is %q but investor fields are absent", u.Kind)
		}
		if missing := u.Investor.missingFields(); len(missing) > 0 {
			return fmt.Errorf("incomplete investor profile, missing: %v", missing)
		}
		return nil
	default:
		return fmt.Errorf("unknown profile kind %q", u.Kind)
	}
}

func (b *BuyerProfile) missingFields() []string {
	var missing []string
	if b.AnnualIncome < 0 {
		missing = append(missing, "annualIncome")
	}
	if b.InterestRate < 0 {
		missing = append(missing, "interestRate")
	}
	if b.LoanTermYears <= 0 {
		missing = append(missing, "loanTerm")
	}
	if b.RiskComfort == "" {
		missing = append(missing, "riskComfort")
	}
	return missing
}

func (i *InvestorProfile) missingFields() []string {
	var missing []string
	if i.DownPaymentPercent <= 0 {
		missing = append(missing, "downPaymentPercent")
	}
	if i.InterestRate < 0 {
		missing = append(missing, "interestRate")
	}
	if i.LoanTermYears <= 0 {
		missing = append(missing, "loanTerm")
	}
	return missing
}
