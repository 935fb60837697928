package handler

import (
	"net/http"

	"sentinel-dca-go/internal/cases"
	"sentinel-dca-go/internal/logger"
)

const exportFilename = "dca_cases.csv"

func caseQuery(r *http.Request, defaultPageSize int) (cases.Query, string, bool) {
	q := r.URL.Query()
	query := cases.Query{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}
	var ok bool
	if query.Page, ok = intParam(r, "page", 1); !ok {
		return query, "page", false
	}
	if query.PageSize, ok = intParam(r, "page_size", defaultPageSize); !ok {
		return query, "page_size", false
	}
	return query, "", true
}

func ListCases(service DashboardService, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, bad, ok := caseQuery(r, defaultPageSize)
		if !ok {
			invalidParam(w, bad)
			return
		}
		writeJSON(w, r, http.StatusOK, cases.Search(service.Cases(), query))
	}
}

// ExportCases writes every case matching the filters, ignoring pagination.
func ExportCases(service DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, bad, ok := caseQuery(r, cases.DefaultPageSize)
		if !ok {
			invalidParam(w, bad)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
		if err := cases.ExportCSV(w, cases.Filter(service.Cases(), query)); err != nil {
			logger.New().WithRequest(r).WithError(err).Warn("error writing export")
		}
	}
}
