package handler

import (
	"errors"
	"net/http"

	"sentinel-dca-go/internal/apierrors"
	"sentinel-dca-go/internal/dataset"
	"sentinel-dca-go/internal/logger"
)

func DatasetStatus(service DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.DatasetStatus())
	}
}

// ReloadDataset reloads synchronously. A failed load keeps the previous
// dataset and answers 502 with the current status as details.
func ReloadDataset(service DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := service.Reload(r.Context())
		if err != nil {
			var loadErr *dataset.LoadError
			if errors.As(err, &loadErr) {
				apierrors.WriteError(w, apierrors.ErrDatasetUnavailable, loadErr.Error(), service.DatasetStatus())
				return
			}
			logger.New().WithRequest(r).WithError(err).Error("dataset reload failed")
			apierrors.WriteError(w, apierrors.ErrInternalServer, "dataset reload failed", nil)
			return
		}
		writeJSON(w, r, http.StatusOK, service.DatasetStatus())
	}
}
