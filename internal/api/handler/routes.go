package handler

import (
	"net/http"

	"sentinel-dca-go/internal/api/handler/router"
	"sentinel-dca-go/internal/auth"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service auth.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/auth/signup",
			Method:  http.MethodPost,
			Handler: SignUp(service),
		},
		{
			Path:    "/v1/auth/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/auth/logout",
			Method:  http.MethodPost,
			Handler: Logout(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

func Dashboard(service DashboardService) []router.Route {
	return []router.Route{
		{Path: "/v1/dashboard", Method: http.MethodGet, Handler: view(service.Dashboard)},
		{Path: "/v1/dashboard/metrics", Method: http.MethodGet, Handler: view(service.Metrics)},
		{Path: "/v1/dashboard/priority", Method: http.MethodGet, Handler: view(service.Priority)},
		{Path: "/v1/dashboard/ageing", Method: http.MethodGet, Handler: view(service.Ageing)},
		{Path: "/v1/dashboard/agencies/recovery", Method: http.MethodGet, Handler: topView(service.AgencyRecovery)},
		{Path: "/v1/dashboard/agencies/breaches", Method: http.MethodGet, Handler: topView(service.AgencyBreaches)},
		{Path: "/v1/dashboard/status", Method: http.MethodGet, Handler: view(service.StatusDistribution)},
		{Path: "/v1/dashboard/escalations", Method: http.MethodGet, Handler: topView(service.Escalations)},
		{Path: "/v1/dashboard/actions", Method: http.MethodGet, Handler: view(service.Actions)},
	}
}

func Cases(service DashboardService, defaultPageSize int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cases",
			Method:  http.MethodGet,
			Handler: ListCases(service, defaultPageSize),
		},
		{
			Path:    "/v1/cases/export",
			Method:  http.MethodGet,
			Handler: ExportCases(service),
		},
	}
}

func Dataset(service DashboardService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset",
			Method:  http.MethodGet,
			Handler: DatasetStatus(service),
		},
		{
			Path:    "/v1/dataset/reload",
			Method:  http.MethodPost,
			Handler: ReloadDataset(service),
		},
	}
}
