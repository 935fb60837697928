package aggregator

import "sentinel-dca-go/internal/types"

var priorityBuckets = []string{types.PriorityHigh, types.PriorityMedium, types.PriorityLow}

type ageingBucket struct {
	name    string
	maxDays int // inclusive; -1 = unbounded
}

var ageingBuckets = []ageingBucket{
	{"0-30 days", 30},
	{"31-60 days", 60},
	{"61-90 days", 90},
	{"91+ days", -1},
}

// SummaryMetrics computes the KPI cards.
func SummaryMetrics(cases []types.Case) types.Metrics {
	if len(cases) == 0 {
		return types.Metrics{}
	}

	var m types.Metrics
	recoveredCases := 0
	for _, c := range cases {
		m.TotalOutstanding += c.InvoiceAmount
		m.TotalRecovered += c.AmountRecovered
		if c.SLABreachCount > 0 && c.CaseStatus != types.StatusClosed {
			m.ActiveSLABreaches++
		}
		switch c.CaseStatus {
		case types.StatusOpen:
			m.OpenCases++
		case types.StatusClosed:
			m.ClosedCases++
		}
		if c.Recovered {
			recoveredCases++
		}
	}
	m.TotalCases = len(cases)
	m.RecoveryRate = percent(m.TotalRecovered, m.TotalOutstanding)
	if recoveredCases > 0 {
		m.AverageRecoveryAmount = m.TotalRecovered / float64(recoveredCases)
	}
	return m
}

// PriorityDistribution counts cases per High/Medium/Low. Any other
// priority_level is left out entirely.
func PriorityDistribution(cases []types.Case) []types.NameValue {
	counts := make(map[string]float64, len(priorityBuckets))
	for _, c := range cases {
		counts[c.PriorityLevel]++
	}
	out := make([]types.NameValue, 0, len(priorityBuckets))
	for _, p := range priorityBuckets {
		out = append(out, types.NameValue{Name: p, Value: counts[p]})
	}
	return out
}

// DebtAgeingBuckets sums invoice_amount per days-overdue range.
func DebtAgeingBuckets(cases []types.Case) []types.NameValue {
	out := make([]types.NameValue, len(ageingBuckets))
	for i, b := range ageingBuckets {
		out[i].Name = b.name
	}
	for _, c := range cases {
		out[ageingIndex(c.DaysOverdue)].Value += c.InvoiceAmount
	}
	return out
}

func ageingIndex(days int) int {
	for i, b := range ageingBuckets {
		if b.maxDays < 0 || days <= b.maxDays {
			return i
		}
	}
	return len(ageingBuckets) - 1
}

type recoveryAcc struct {
	invoiced, recovered float64
}

// RecoveryRateByAgency returns the recovery rate per dca_id, best first.
func RecoveryRateByAgency(cases []types.Case) []types.AgencyRecovery {
	groups := groupBy(cases, byAgency, func(a recoveryAcc, c types.Case) recoveryAcc {
		a.invoiced += c.InvoiceAmount
		a.recovered += c.AmountRecovered
		return a
	})
	out := make([]types.AgencyRecovery, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.AgencyRecovery{Name: g.key, RecoveryRate: percent(g.acc.recovered, g.acc.invoiced)})
	}
	sortDesc(out, func(r types.AgencyRecovery) float64 { return r.RecoveryRate })
	return out
}

// SLABreachesByAgency sums sla_breach_count per dca_id, worst first.
func SLABreachesByAgency(cases []types.Case) []types.AgencyBreaches {
	groups := groupBy(cases, byAgency, func(n int, c types.Case) int { return n + c.SLABreachCount })
	out := make([]types.AgencyBreaches, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.AgencyBreaches{Name: g.key, Breaches: g.acc})
	}
	sortDesc(out, func(b types.AgencyBreaches) float64 { return float64(b.Breaches) })
	return out
}

// CaseStatusDistribution counts cases per case_status in first-seen order.
// Callers must not rely on any particular ordering.
func CaseStatusDistribution(cases []types.Case) []types.NameValue {
	return nameValues(groupBy(cases, byStatus, countFold))
}

// EscalationReasons counts cases per non-empty escalation_reason, most
// frequent first. Cases without a reason are not reported as "Unknown".
func EscalationReasons(cases []types.Case) []types.NameValue {
	out := nameValues(groupBy(cases, byEscalationReason, countFold))
	sortDesc(out, func(nv types.NameValue) float64 { return nv.Value })
	return out
}

func nameValues(groups []group[float64]) []types.NameValue {
	out := make([]types.NameValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, types.NameValue{Name: g.key, Value: g.acc})
	}
	return out
}
