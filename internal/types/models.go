package types

// Case is one debt-collection case as loaded from the dataset.
// Missing numeric cells are already coalesced to zero by the loader.
type Case struct {
	CaseID           string  `json:"case_id"`
	CustomerID       string  `json:"customer_id,omitempty"`
	CustomerName     string  `json:"customer_name,omitempty"`
	CustomerType     string  `json:"customer_type,omitempty"`
	InvoiceAmount    float64 `json:"invoice_amount"`
	AmountRecovered  float64 `json:"amount_recovered"`
	DaysOverdue      int     `json:"days_overdue"`
	PriorityLevel    string  `json:"priority_level"`
	CaseStatus       string  `json:"case_status"`
	DCAID            string  `json:"dca_id"`
	SLABreachCount   int     `json:"sla_breach_count"`
	Recovered        bool    `json:"recovered"`
	EscalationReason string  `json:"escalation_reason"`
	RiskScore        float64 `json:"risk_score"`
}

// Well-known case_status and priority_level values.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	Unknown = "Unknown"
)
