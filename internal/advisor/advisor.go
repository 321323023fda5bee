// Package advisor owns the interaction with the external text-generation
// service: prompt assembly, the injectable client, and routing responses
// through the recovery parser before anything interprets them. The
// numeric calculators take no dependency on this package.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/homevest/api/internal/logger"
	"github.com/homevest/api/internal/models"
	"github.com/homevest/api/internal/recovery"
)

// Advisor enriches a computed analysis with generated narrative. It never
// retries the generator; retry policy belongs to the calling layer.
type Advisor struct {
	client GenerationClient
	log    *logger.Logger
}

// New creates an Advisor around an injected generation client.
func New(client GenerationClient, log *logger.Logger) *Advisor {
	return &Advisor{client: client, log: log}
}

// narrative is the slice of the generated document this engine trusts:
// free text only. Numeric fields in the response are ignored; the local
// calculators are authoritative for every number.
type narrative struct {
	AdvisorMessage string   `json:"advisorMessage"`
	Insights       []string `json:"insights"`
	KeyInsights    []string `json:"keyInsights"`
	Warnings       []string `json:"warnings"`
}

// Enrich asks the generator for narrative and overlays it onto the result.
// The raw response always passes through the recovery parser first. Any
// failure leaves the locally generated narrative in place and returns the
// error for the caller to log or act on.
func (a *Advisor) Enrich(ctx context.Context, property *models.PropertyInput, profile *models.UserFinancialProfile, result *models.AnalysisResult) error {
	raw, err := a.client.Complete(ctx, systemPrompt, BuildPrompt(property, profile, result))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	recovered, err := recovery.Recover(raw)
	if err != nil {
		var rerr *recovery.Error
		if errors.As(err, &rerr) {
			a.log.Warn("Generator response could not be recovered", map[string]interface{}{
				"original_bytes": len(rerr.Original),
				"repaired_bytes": len(rerr.Repaired),
			})
		}
		return err
	}

	var n narrative
	if err := json.Unmarshal([]byte(recovered), &n); err != nil {
		return fmt.Errorf("recovered document does not match the narrative contract: %w", err)
	}

	if n.AdvisorMessage != "" {
		result.AdvisorMessage = n.AdvisorMessage
	}
	insights := n.Insights
	if len(insights) == 0 {
		insights = n.KeyInsights
	}
	if len(insights) > 0 {
		result.Insights = insights
	}
	if n.Warnings != nil {
		result.Warnings = n.Warnings
	}
	result.NormalizeShape()
	return nil
}
