// internal/types/kpi_models.go
package types

// --------------------------------------------
// KPI cards shown at the top of the dashboard
// --------------------------------------------
type Metrics struct {
	TotalOutstanding      float64 `json:"totalOutstanding"`
	TotalRecovered        float64 `json:"totalRecovered"`
	ActiveSLABreaches     int     `json:"activeSLABreaches"`
	RecoveryRate          float64 `json:"recoveryRate"` // percent, 0–100
	TotalCases            int     `json:"totalCases"`
	OpenCases             int     `json:"openCases"`
	ClosedCases           int     `json:"closedCases"`
	AverageRecoveryAmount float64 `json:"averageRecoveryAmount"`
}

// --------------------------------------------
// Chart series. Field names are bound by the
// frontend charts (dataKey), do not rename.
// --------------------------------------------
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type AgencyRecovery struct {
	Name         string  `json:"name"`
	RecoveryRate float64 `json:"recoveryRate"`
}

type AgencyBreaches struct {
	Name     string `json:"name"`
	Breaches int    `json:"breaches"`
}

// --------------------------------------------
// Every view of the allocation dashboard
// --------------------------------------------
type Dashboard struct {
	Metrics            Metrics          `json:"metrics"`
	Priority           []NameValue      `json:"priorityDistribution"`
	DebtAgeing         []NameValue      `json:"debtAgeing"`
	RecoveryByAgency   []AgencyRecovery `json:"recoveryByAgency"`
	SLABreachesAgency  []AgencyBreaches `json:"slaBreachesByAgency"`
	StatusDistribution []NameValue      `json:"statusDistribution"`
	EscalationReasons  []NameValue      `json:"escalationReasons"`
}
