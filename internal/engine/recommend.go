package engine

import (
	"github.com/homevest/api/internal/models"
)

// baseTactics is the fixed negotiation menu every recommendation starts
// from. Market status appends to it, never rewrites it.
var baseTactics = []string{
	"Request seller concessions for closing costs",
	"Ask for home warranty",
	"Negotiate based on inspection findings",
}

var slowMovingTactics = []string{
	"Property has been on the market a while; open with a below-ask offer",
	"Ask about the seller's timeline and motivation",
}

var fastMovingTactics = []string{
	"Submit a clean offer quickly; this listing is drawing attention",
	"Get pre-approval letter ready before offering",
}

// Recommend produces the deterministic negotiation guidance from the
// upstream market read. No numeric risk of its own; pure function of its
// inputs.
func Recommend(property *models.PropertyInput, market models.MarketSummary) models.Recommendation {
	offerFactor := standardOfferFactor
	if market.PriceVsEstimate.Verdict == models.VerdictOverpriced {
		offerFactor = overpricedOfferFactor
	}

	tactics := make([]string, 0, len(baseTactics)+2)
	tactics = append(tactics, baseTactics...)

	urgency := "Medium"
	switch market.DaysOnMarketStatus {
	case models.MarketSlowMoving:
		tactics = append(tactics, slowMovingTactics...)
	case models.MarketFastMoving:
		tactics = append(tactics, fastMovingTactics...)
		urgency = "High"
	}

	return models.Recommendation{
		SuggestedOffer: roundDollars(property.Price * offerFactor),
		Tactics:        tactics,
		Urgency:        urgency,
	}
}
