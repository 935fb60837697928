package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-dca-go/internal/types"
)

func sampleCases() []types.Case {
	return []types.Case{
		{
			InvoiceAmount:   1000,
			AmountRecovered: 400,
			DaysOverdue:     45,
			PriorityLevel:   "High",
			CaseStatus:      "Open",
			DCAID:           "A1",
			SLABreachCount:  1,
		},
		{
			InvoiceAmount:    500,
			AmountRecovered:  500,
			DaysOverdue:      10,
			PriorityLevel:    "Low",
			CaseStatus:       "Closed",
			DCAID:            "A1",
			Recovered:        true,
			EscalationReason: "Non-payment",
		},
	}
}

func TestTwoCaseScenario(t *testing.T) {
	cases := sampleCases()

	m := SummaryMetrics(cases)
	assert.Equal(t, 1500.0, m.TotalOutstanding)
	assert.Equal(t, 900.0, m.TotalRecovered)
	assert.InDelta(t, 60.0, m.RecoveryRate, 1e-9)
	assert.Equal(t, 2, m.TotalCases)
	assert.Equal(t, 1, m.OpenCases)
	assert.Equal(t, 1, m.ClosedCases)
	assert.Equal(t, 1, m.ActiveSLABreaches)
	// one recovered case carries the whole recovered total
	assert.Equal(t, 900.0, m.AverageRecoveryAmount)

	assert.Equal(t, []types.NameValue{
		{Name: "0-30 days", Value: 500},
		{Name: "31-60 days", Value: 1000},
		{Name: "61-90 days", Value: 0},
		{Name: "91+ days", Value: 0},
	}, DebtAgeingBuckets(cases))

	rec := RecoveryRateByAgency(cases)
	require.Len(t, rec, 1)
	assert.Equal(t, "A1", rec[0].Name)
	assert.InDelta(t, 60.0, rec[0].RecoveryRate, 1e-9)

	assert.Equal(t, []types.NameValue{{Name: "Non-payment", Value: 1}}, EscalationReasons(cases))
	assert.Equal(t, []types.AgencyBreaches{{Name: "A1", Breaches: 1}}, SLABreachesByAgency(cases))
	assert.Equal(t, []types.NameValue{
		{Name: "High", Value: 1},
		{Name: "Medium", Value: 0},
		{Name: "Low", Value: 1},
	}, PriorityDistribution(cases))
}

func TestSummaryMetrics(t *testing.T) {
	t.Run("empty input is all zero", func(t *testing.T) {
		assert.Equal(t, types.Metrics{}, SummaryMetrics(nil))
		assert.Equal(t, types.Metrics{}, SummaryMetrics([]types.Case{}))
	})

	t.Run("zero invoices never divide by zero", func(t *testing.T) {
		m := SummaryMetrics([]types.Case{
			{AmountRecovered: 50},
			{AmountRecovered: 25},
		})
		assert.Equal(t, 0.0, m.RecoveryRate)
		assert.False(t, math.IsNaN(m.RecoveryRate))
		assert.False(t, math.IsInf(m.RecoveryRate, 0))
		assert.Equal(t, 0.0, m.AverageRecoveryAmount)
		assert.Equal(t, 2, m.TotalCases)
	})

	t.Run("closed cases do not count as active breaches", func(t *testing.T) {
		m := SummaryMetrics([]types.Case{
			{SLABreachCount: 3, CaseStatus: "Closed"},
			{SLABreachCount: 2, CaseStatus: "Escalated"},
			{SLABreachCount: 1, CaseStatus: ""},
			{SLABreachCount: 0, CaseStatus: "Open"},
		})
		assert.Equal(t, 2, m.ActiveSLABreaches)
		assert.Equal(t, 1, m.OpenCases)
		assert.Equal(t, 1, m.ClosedCases)
	})

	t.Run("overflowing sums keep rates finite", func(t *testing.T) {
		huge := []types.Case{
			{InvoiceAmount: 1e308, AmountRecovered: 1e308, DCAID: "A1"},
			{InvoiceAmount: 1e308, AmountRecovered: 1e308, DCAID: "A1"},
		}
		m := SummaryMetrics(huge)
		assert.True(t, math.IsInf(m.TotalOutstanding, 1))
		assert.Equal(t, 0.0, m.RecoveryRate)

		rates := RecoveryRateByAgency(huge)
		require.Len(t, rates, 1)
		assert.Equal(t, 0.0, rates[0].RecoveryRate)
	})

	t.Run("status match is exact", func(t *testing.T) {
		m := SummaryMetrics([]types.Case{{CaseStatus: "open"}, {CaseStatus: "CLOSED"}})
		assert.Equal(t, 0, m.OpenCases)
		assert.Equal(t, 0, m.ClosedCases)
	})
}

func TestPriorityDistribution(t *testing.T) {
	cases := []types.Case{
		{PriorityLevel: "High"},
		{PriorityLevel: "high"},
		{PriorityLevel: "Critical"},
		{PriorityLevel: ""},
		{PriorityLevel: "Medium"},
		{PriorityLevel: "Medium"},
	}

	got := PriorityDistribution(cases)
	require.Len(t, got, 3)

	total := 0.0
	for i, name := range []string{"High", "Medium", "Low"} {
		assert.Equal(t, name, got[i].Name)
		total += got[i].Value
	}
	assert.Equal(t, 1.0, got[0].Value)
	assert.Equal(t, 2.0, got[1].Value)
	assert.Equal(t, 0.0, got[2].Value)
	assert.Less(t, total, float64(len(cases)))

	assert.Len(t, PriorityDistribution(nil), 3)
}

func TestDebtAgeingBuckets(t *testing.T) {
	tests := []struct {
		name   string
		days   int
		bucket string
	}{
		{"zero", 0, "0-30 days"},
		{"upper bound of first bucket", 30, "0-30 days"},
		{"lower bound of second bucket", 31, "31-60 days"},
		{"upper bound of second bucket", 60, "31-60 days"},
		{"lower bound of third bucket", 61, "61-90 days"},
		{"upper bound of third bucket", 90, "61-90 days"},
		{"first day past ninety", 91, "91+ days"},
		{"very old", 720, "91+ days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DebtAgeingBuckets([]types.Case{{DaysOverdue: tt.days, InvoiceAmount: 100}})
			for _, b := range got {
				if b.Name == tt.bucket {
					assert.Equal(t, 100.0, b.Value, b.Name)
				} else {
					assert.Equal(t, 0.0, b.Value, b.Name)
				}
			}
		})
	}

	t.Run("buckets sum to the invoiced total", func(t *testing.T) {
		cases := []types.Case{
			{DaysOverdue: 5, InvoiceAmount: 10.5},
			{DaysOverdue: 45, InvoiceAmount: 20},
			{DaysOverdue: 75, InvoiceAmount: 30},
			{DaysOverdue: 120, InvoiceAmount: 40},
			{InvoiceAmount: 7},
		}
		sum := 0.0
		for _, b := range DebtAgeingBuckets(cases) {
			sum += b.Value
		}
		assert.InDelta(t, 107.5, sum, 1e-9)
	})
}

func TestRecoveryRateByAgency(t *testing.T) {
	cases := []types.Case{
		{DCAID: "DCA-1", InvoiceAmount: 100, AmountRecovered: 10},
		{DCAID: "DCA-2", InvoiceAmount: 100, AmountRecovered: 90},
		{DCAID: "", InvoiceAmount: 200, AmountRecovered: 100},
		{DCAID: "DCA-3", InvoiceAmount: 0, AmountRecovered: 0},
		{DCAID: "DCA-1", InvoiceAmount: 100, AmountRecovered: 30},
	}

	got := RecoveryRateByAgency(cases)
	require.Len(t, got, 4)
	assert.Equal(t, "DCA-2", got[0].Name)
	assert.Equal(t, "Unknown", got[1].Name)
	assert.InDelta(t, 50.0, got[1].RecoveryRate, 1e-9)
	assert.Equal(t, "DCA-1", got[2].Name)
	assert.InDelta(t, 20.0, got[2].RecoveryRate, 1e-9)
	assert.Equal(t, "DCA-3", got[3].Name)
	assert.Equal(t, 0.0, got[3].RecoveryRate)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].RecoveryRate, got[i].RecoveryRate)
	}
}

func TestSLABreachesByAgency(t *testing.T) {
	cases := []types.Case{
		{DCAID: "DCA-1", SLABreachCount: 1},
		{DCAID: "DCA-2", SLABreachCount: 4},
		{DCAID: "DCA-1", SLABreachCount: 2},
		{SLABreachCount: 3},
		{DCAID: "DCA-4"},
	}

	got := SLABreachesByAgency(cases)
	assert.Equal(t, []types.AgencyBreaches{
		{Name: "DCA-2", Breaches: 4},
		{Name: "DCA-1", Breaches: 3},
		{Name: "Unknown", Breaches: 3},
		{Name: "DCA-4", Breaches: 0},
	}, got)
}

func TestCaseStatusDistribution(t *testing.T) {
	cases := []types.Case{
		{CaseStatus: "In Progress"},
		{CaseStatus: "Open"},
		{CaseStatus: ""},
		{CaseStatus: "Open"},
		{CaseStatus: "Legal Action"},
	}

	assert.Equal(t, []types.NameValue{
		{Name: "In Progress", Value: 1},
		{Name: "Open", Value: 2},
		{Name: "Unknown", Value: 1},
		{Name: "Legal Action", Value: 1},
	}, CaseStatusDistribution(cases))

	assert.Empty(t, CaseStatusDistribution(nil))
}

func TestEscalationReasons(t *testing.T) {
	cases := []types.Case{
		{EscalationReason: "Dispute"},
		{EscalationReason: ""},
		{EscalationReason: "Non-payment"},
		{EscalationReason: "Non-payment"},
		{},
		{EscalationReason: "Bankruptcy"},
	}

	got := EscalationReasons(cases)
	assert.Equal(t, []types.NameValue{
		{Name: "Non-payment", Value: 2},
		{Name: "Dispute", Value: 1},
		{Name: "Bankruptcy", Value: 1},
	}, got)

	sum := 0.0
	for _, nv := range got {
		assert.NotEqual(t, "", nv.Name)
		assert.NotEqual(t, "Unknown", nv.Name)
		sum += nv.Value
	}
	assert.Equal(t, 4.0, sum)
}

func TestInputIsNotMutated(t *testing.T) {
	cases := sampleCases()
	before := append([]types.Case(nil), cases...)

	_ = Build(cases)

	assert.Equal(t, before, cases)
}

func TestBuildAndTopN(t *testing.T) {
	d := Build(sampleCases())
	assert.Equal(t, 2, d.Metrics.TotalCases)
	assert.Len(t, d.DebtAgeing, 4)
	assert.Len(t, d.Priority, 3)

	empty := Build(nil)
	assert.Equal(t, types.Metrics{}, empty.Metrics)
	assert.NotNil(t, empty.RecoveryByAgency)
	assert.NotNil(t, empty.EscalationReasons)

	items := []int{5, 4, 3}
	assert.Equal(t, []int{5, 4}, TopN(items, 2))
	assert.Equal(t, items, TopN(items, 0))
	assert.Equal(t, items, TopN(items, 10))
}
