package cases

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"sentinel-dca-go/internal/types"
)

const (
	DefaultPageSize = 25
	All             = "All"
)

// Query is the browser view state: search text, filters and page.
type Query struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type Page struct {
	Items      []types.Case `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	TotalCases int          `json:"total_cases"`
	TotalValue float64      `json:"total_value"`
}

// Filter keeps cases matching the search text (case-insensitive, on case id,
// customer name and customer id) and the exact status and priority filters.
// Empty or "All" filters match everything.
func Filter(cs []types.Case, q Query) []types.Case {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]types.Case, 0, len(cs))
	for _, c := range cs {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.CaseID), term) &&
			!strings.Contains(strings.ToLower(c.CustomerName), term) &&
			!strings.Contains(strings.ToLower(c.CustomerID), term) {
			continue
		}
		if active(q.Status) && c.CaseStatus != q.Status {
			continue
		}
		if active(q.Priority) && c.PriorityLevel != q.Priority {
			continue
		}
		out = append(out, c)
	}
	return out
}

func active(filter string) bool {
	return filter != "" && filter != All
}

// Paginate slices one page out of cs. Pages are 1-based and clamped into
// range; size <= 0 falls back to DefaultPageSize.
func Paginate(cs []types.Case, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page{
		PageSize:   size,
		TotalCases: len(cs),
		TotalPages: int(math.Ceil(float64(len(cs)) / float64(size))),
	}
	for _, c := range cs {
		p.TotalValue += c.InvoiceAmount
	}

	switch {
	case page < 1 || p.TotalPages == 0:
		page = 1
	case p.TotalPages > 0 && page > p.TotalPages:
		page = p.TotalPages
	}
	p.Page = page

	start := (page - 1) * size
	end := start + size
	if start > len(cs) {
		start = len(cs)
	}
	if end > len(cs) {
		end = len(cs)
	}
	p.Items = append([]types.Case{}, cs[start:end]...)
	return p
}

// Search is Filter followed by Paginate.
func Search(cs []types.Case, q Query) Page {
	return Paginate(Filter(cs, q), q.Page, q.PageSize)
}

var exportHeader = []string{"Case ID", "Customer", "Invoice Amount", "Days Overdue", "Status", "Priority", "DCA", "Risk Score"}

// ExportCSV writes cs with a display header row.
func ExportCSV(w io.Writer, cs []types.Case) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range cs {
		row := []string{
			c.CaseID,
			c.CustomerName,
			formatNumber(c.InvoiceAmount),
			strconv.Itoa(c.DaysOverdue),
			c.CaseStatus,
			c.PriorityLevel,
			c.DCAID,
			formatNumber(c.RiskScore),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
