package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"sentinel-dca-go/internal/logger"
	"sentinel-dca-go/internal/types"
)

// Loader reads the whole dataset from its Source on every call.
type Loader struct {
	source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

func (l *Loader) Location() string {
	return l.source.Location()
}

// Load fetches and parses the dataset. Every failure is a *LoadError.
func (l *Loader) Load(ctx context.Context) ([]types.Case, error) {
	log := logger.Component("dataset.loader").WithField("source", l.source.Location())

	rc, format, err := l.source.Open(ctx)
	if err != nil {
		log.WithError(err).Error("open failed")
		return nil, &LoadError{Op: "open", Source: l.source.Location(), Err: err}
	}
	defer rc.Close()

	cases, err := Parse(rc, format)
	if err != nil {
		log.WithError(err).Error("parse failed")
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = l.source.Location()
			return nil, le
		}
		return nil, &LoadError{Op: "parse", Source: l.source.Location(), Err: err}
	}
	log.WithFields(map[string]interface{}{
		"format":  format,
		"records": len(cases),
	}).Info("dataset loaded")
	return cases, nil
}

// Parse decodes a CSV or XLSX stream with a header row into cases.
func Parse(r io.Reader, format Format) ([]types.Case, error) {
	var rows [][]string
	var err error
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &LoadError{Op: "read", Err: errors.New("missing header row")}
	}

	cols := resolveColumns(rows[0])
	out := make([]types.Case, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var c types.Case
		for i, cell := range row {
			if i >= len(cols) || cols[i] == nil {
				continue
			}
			cols[i](&c, strings.TrimSpace(cell))
		}
		out = append(out, c)
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &LoadError{Op: "parse", Err: fmt.Errorf("csv: %w", err)}
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Op: "read", Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Op: "read", Err: errors.New("no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Op: "read", Err: fmt.Errorf("read rows: %w", err)}
	}
	return rows, nil
}

type setter func(c *types.Case, v string)

var fields = map[string]setter{
	"case_id":           func(c *types.Case, v string) { c.CaseID = v },
	"customer_id":       func(c *types.Case, v string) { c.CustomerID = v },
	"customer_name":     func(c *types.Case, v string) { c.CustomerName = v },
	"customer_type":     func(c *types.Case, v string) { c.CustomerType = v },
	"invoice_amount":    func(c *types.Case, v string) { c.InvoiceAmount = number(v) },
	"amount_recovered":  func(c *types.Case, v string) { c.AmountRecovered = number(v) },
	"days_overdue":      func(c *types.Case, v string) { c.DaysOverdue = integer(v) },
	"priority_level":    func(c *types.Case, v string) { c.PriorityLevel = v },
	"case_status":       func(c *types.Case, v string) { c.CaseStatus = v },
	"dca_id":            func(c *types.Case, v string) { c.DCAID = v },
	"sla_breach_count":  func(c *types.Case, v string) { c.SLABreachCount = integer(v) },
	"recovered":         func(c *types.Case, v string) { c.Recovered = number(v) == 1 },
	"escalation_reason": func(c *types.Case, v string) { c.EscalationReason = v },
	"risk_score":        func(c *types.Case, v string) { c.RiskScore = number(v) },
}

// resolveColumns maps each header position to the field it fills, nil for
// columns we don't know.
func resolveColumns(header []string) []setter {
	cols := make([]setter, len(header))
	for i, h := range header {
		cols[i] = fields[normalizeHeader(h)]
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func number(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// integer clamps to the int32 range so huge cells stay on their side of
// every threshold.
func integer(v string) int {
	f := math.Trunc(number(v))
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
