package models

// PropertyInput describes a single listing under analysis. It is built once
// per analysis request and never mutated afterwards.
// All nullable fields use pointers to distinguish between zero values and
// data the listing simply did not carry.
type PropertyInput struct {
	LotArea        *float64 `json:"lotArea,omitempty"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	EstimatedRent  *float64 `json:"estimatedRent,omitempty"`
	TaxAssessed    *float64 `json:"taxAssessedValue,omitempty"`
	DaysOnMarket   *int     `json:"daysOnMarket,omitempty"`
	MonthlyHOA     *float64 `json:"hoaFee,omitempty"`
	ZipCode        string   `json:"zipCode"`
	Price          float64  `json:"price"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      float64  `json:"bathrooms"`
	LivingArea     float64  `json:"livingArea"`
}

// HOA returns the monthly HOA fee, treating an absent value as zero.
func (p *PropertyInput) HOA() float64 {
	if p.MonthlyHOA == nil {
		return 0
	}
	return *p.MonthlyHOA
}

// MarketDays returns days on market, treating an absent value as zero,
// which downstream scoring interprets as a fresh listing.
func (p *PropertyInput) MarketDays() int {
	if p.DaysOnMarket == nil {
		return 0
	}
	return *p.DaysOnMarket
}
