package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/adspend-report-api/internal/api/handler/router"
	"github.com/vfg2006/adspend-report-api/internal/usecases/authenticating"
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

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Report(service ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report/refresh",
			Method:  http.MethodPost,
			Handler: RefreshReport(service),
		},
		{
			Path:    "/v1/report/status",
			Method:  http.MethodGet,
			Handler: ReportStatus(service),
		},
		{
			Path:    "/v1/report/kpi",
			Method:  http.MethodGet,
			Handler: GetKPIReport(service),
		},
		{
			Path:    "/v1/report/trend",
			Method:  http.MethodGet,
			Handler: GetTrend(service),
		},
		{
			Path:    "/v1/report/ranking",
			Method:  http.MethodGet,
			Handler: GetRanking(service),
		},
		{
			Path:    "/v1/report/raw",
			Method:  http.MethodGet,
			Handler: GetRawRecords(service),
		},
	}
}

func Rates(service ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rates",
			Method:  http.MethodGet,
			Handler: GetRates(service),
		},
	}
}
