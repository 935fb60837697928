package handler

import (
	"context"
	"net/http"

	"sentinel-dca-go/internal/actionable"
	"sentinel-dca-go/internal/aggregator"
	"sentinel-dca-go/internal/dataset"
	"sentinel-dca-go/internal/types"
)

// DashboardService is implemented by *dashboard.Service.
type DashboardService interface {
	Reload(ctx context.Context) (int, error)
	Cases() []types.Case
	DatasetStatus() dataset.Summary

	Dashboard() types.Dashboard
	Metrics() types.Metrics
	Priority() []types.NameValue
	Ageing() []types.NameValue
	AgencyRecovery() []types.AgencyRecovery
	AgencyBreaches() []types.AgencyBreaches
	StatusDistribution() []types.NameValue
	Escalations() []types.NameValue
	Actions() []actionable.ActionCard
}

// view serves a view that takes no parameters.
func view[T any](get func() T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, get())
	}
}

// topView serves a ranked view trimmed by the optional ?limit=N.
func topView[T any](get func() []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := intParam(r, "limit", 0)
		if !ok {
			invalidParam(w, "limit")
			return
		}
		writeJSON(w, r, http.StatusOK, aggregator.TopN(get(), limit))
	}
}
