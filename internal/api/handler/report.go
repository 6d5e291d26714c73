package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/adspend-report-api/infrastructure/integrator/gsheets"
	"github.com/vfg2006/adspend-report-api/internal/domain"
	"github.com/vfg2006/adspend-report-api/internal/usecases/aggregating"
	"github.com/vfg2006/adspend-report-api/internal/usecases/reporting"
	"github.com/vfg2006/adspend-report-api/pkg/apiErrors"
	"github.com/vfg2006/adspend-report-api/pkg/log"
	"github.com/vfg2006/adspend-report-api/pkg/utils"
)

// ReportService é a fachada do pipeline de relatório consumida pelos handlers
type ReportService interface {
	Refresh(ctx context.Context) (string, error)
	Status() domain.SessionStatus
	Rates(ctx context.Context) domain.RateSnapshot
	BuildKPIReport(ctx context.Context) (*domain.KPIReport, error)
	BuildTrend(ctx context.Context, source string) (*domain.TrendReport, error)
	BuildRanking(ctx context.Context, source string, n int, dateRange domain.DateRange) (*domain.EntityRanking, error)
	RawRecords(source string) ([]domain.CostRecord, error)
}

// RefreshReport dispara o pipeline de carga. Um refresh concorrente recebe 409;
// falha de fonte externa vira 502 e a sessão anterior permanece intacta.
func RefreshReport(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		runID, err := service.Refresh(r.Context())
		if err != nil {
			handleReportError(w, err)
			return
		}

		logger.WithField("run_id", runID).Info("Refresh disparado via API")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"run_id": runID,
		})
	}
}

func ReportStatus(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.Status())
	}
}

func GetKPIReport(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.BuildKPIReport(r.Context())
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

func GetTrend(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")

		trend, err := service.BuildTrend(r.Context(), source)
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(trend)
	}
}

func GetRanking(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		n := 0
		if rawN := query.Get("n"); rawN != "" {
			parsed, err := strconv.Atoi(rawN)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro n deve ser um inteiro não-negativo", nil)
				return
			}
			n = parsed
		}

		dateRange, err := parseDateRange(query.Get("start_date"), query.Get("end_date"))
		if err != nil {
			logger.WithError(err).Warn("Intervalo de datas inválido no ranking")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		ranking, err := service.BuildRanking(r.Context(), query.Get("source"), n, dateRange)
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ranking)
	}
}

func GetRawRecords(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := service.RawRecords(r.URL.Query().Get("source"))
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// parseDateRange monta o intervalo a partir dos parâmetros opcionais; os dois
// devem vir juntos ou nenhum
func parseDateRange(rawStart, rawEnd string) (domain.DateRange, error) {
	if (rawStart == "") != (rawEnd == "") {
		return domain.DateRange{}, errors.New("start_date e end_date devem ser informados juntos")
	}

	start, err := utils.ParseDate(rawStart)
	if err != nil {
		return domain.DateRange{}, errors.New("start_date inválido, use AAAA-MM-DD")
	}

	end, err := utils.ParseDate(rawEnd)
	if err != nil {
		return domain.DateRange{}, errors.New("end_date inválido, use AAAA-MM-DD")
	}

	return domain.DateRange{Start: *start, End: *end}, nil
}

// handleReportError traduz os erros do pipeline para a resposta padronizada
func handleReportError(w http.ResponseWriter, err error) {
	var fetchErr *gsheets.FetchError
	var emptyRange *aggregating.EmptyRangeError

	switch {
	case errors.Is(err, reporting.ErrRefreshInProgress):
		apiErrors.WriteError(w, apiErrors.ErrRefreshInProgress, "Um refresh já está em andamento", nil)
	case errors.Is(err, reporting.ErrDataNotLoaded):
		apiErrors.WriteError(w, apiErrors.ErrDataNotLoaded, "Dados ainda não carregados; execute um refresh", nil)
	case errors.As(err, &fetchErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha ao buscar dados da planilha", map[string]any{
			"source": fetchErr.Source,
		})
	case errors.As(err, &emptyRange):
		apiErrors.WriteError(w, apiErrors.ErrEmptyRange, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o relatório", nil)
	}
}
