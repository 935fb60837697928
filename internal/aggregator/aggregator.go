package aggregator

import (
	"math"
	"sort"

	"sentinel-dca-go/internal/types"
)

type group[A any] struct {
	key string
	acc A
}

// groupBy folds cases into per-key accumulators, keeping the order in which
// keys were first seen. Cases for which key reports false are skipped.
func groupBy[A any](cases []types.Case, key func(types.Case) (string, bool), fold func(A, types.Case) A) []group[A] {
	index := map[string]int{}
	var out []group[A]
	for _, c := range cases {
		k, ok := key(c)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, group[A]{key: k})
		}
		out[i].acc = fold(out[i].acc, c)
	}
	return out
}

// sortDesc orders items non-increasing by score; ties keep their input order.
func sortDesc[T any](items []T, score func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool { return score(items[i]) > score(items[j]) })
}

func orUnknown(s string) (string, bool) {
	if s == "" {
		return types.Unknown, true
	}
	return s, true
}

func byAgency(c types.Case) (string, bool) { return orUnknown(c.DCAID) }

func byStatus(c types.Case) (string, bool) { return orUnknown(c.CaseStatus) }

func byEscalationReason(c types.Case) (string, bool) {
	return c.EscalationReason, c.EscalationReason != ""
}

func countFold(n float64, _ types.Case) float64 { return n + 1 }

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	p := part / whole * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// Build computes every dashboard view from the same case list.
func Build(cases []types.Case) types.Dashboard {
	return types.Dashboard{
		Metrics:            SummaryMetrics(cases),
		Priority:           PriorityDistribution(cases),
		DebtAgeing:         DebtAgeingBuckets(cases),
		RecoveryByAgency:   RecoveryRateByAgency(cases),
		SLABreachesAgency:  SLABreachesByAgency(cases),
		StatusDistribution: CaseStatusDistribution(cases),
		EscalationReasons:  EscalationReasons(cases),
	}
}

// TopN returns the first n items, or all of them when n <= 0.
func TopN[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
