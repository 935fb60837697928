package actionable

import (
	"fmt"

	"sentinel-dca-go/internal/types"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

const (
	lowRecoveryRate   = 50.0 // percent
	longOverdueShare  = 0.25
	longOverdueBucket = "91+ days"
)

// Generate turns the dashboard views into "require immediate action" cards.
// It always returns at least one card.
func Generate(d types.Dashboard) []ActionCard {
	var cards []ActionCard

	if n := d.Metrics.ActiveSLABreaches; n > 0 && len(d.SLABreachesAgency) > 0 {
		worst := d.SLABreachesAgency[0]
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%d open cases breach SLA; %s has the most breaches (%d)", n, worst.Name, worst.Breaches),
			Action:  fmt.Sprintf("Escalate open breaches with %s and review its SLA terms", worst.Name),
			Impact:  "Protect recovery timelines and contractual penalties",
		})
	}

	if len(d.RecoveryByAgency) > 0 {
		lowest := d.RecoveryByAgency[len(d.RecoveryByAgency)-1]
		if lowest.RecoveryRate < lowRecoveryRate {
			cards = append(cards, ActionCard{
				Insight: fmt.Sprintf("%s recovers only %.1f%% of assigned value", lowest.Name, lowest.RecoveryRate),
				Action:  fmt.Sprintf("Review %s performance and reallocate high-priority cases", lowest.Name),
				Impact:  "Shift outstanding value to better performing agencies",
			})
		}
	}

	var total, longOverdue float64
	for _, b := range d.DebtAgeing {
		total += b.Value
		if b.Name == longOverdueBucket {
			longOverdue = b.Value
		}
	}
	if total > 0 && longOverdue/total >= longOverdueShare {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%.0f%% of outstanding debt is over 90 days overdue", longOverdue/total*100),
			Action:  "Prioritise legal escalation or settlement offers for 91+ day cases",
			Impact:  "Limit write-offs on ageing debt",
		})
	}

	if len(cards) == 0 {
		return []ActionCard{{
			Insight: "No SLA breaches or underperforming agencies detected",
			Action:  "Keep monitoring the portfolio",
			Impact:  "Low immediate intervention",
		}}
	}
	return cards
}
