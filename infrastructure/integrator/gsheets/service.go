package gsheets

import (
	"context"
	"fmt"

	"github.com/vfg2006/adspend-report-api/internal/config"
	"github.com/vfg2006/adspend-report-api/internal/domain"
	"github.com/vfg2006/adspend-report-api/pkg/log"
)

// FetchError indica falha na carga de uma fonte inteira: a planilha fica
// indisponível e a apresentação exibe "dados não carregados", nunca um
// resultado parcial adivinhado.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("falha ao buscar dados da fonte %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SheetsReader é o subconjunto do cliente usado pelo serviço; os testes
// substituem por um fake
type SheetsReader interface {
	WorksheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// Service busca as linhas brutas das duas planilhas de origem
type Service struct {
	cfg    *config.Config
	client SheetsReader
}

func New(cfg *config.Config, client SheetsReader) *Service {
	return &Service{cfg: cfg, client: client}
}

// FetchMoloco percorre todas as abas da exportação primária e concatena as
// linhas de cada uma sob o cabeçalho próprio da aba
func (s *Service) FetchMoloco(ctx context.Context) ([]domain.RawRow, error) {
	spreadsheetID := s.cfg.Sheets.MolocoSheetID

	titles, err := s.client.WorksheetTitles(ctx, spreadsheetID)
	if err != nil {
		return nil, &FetchError{Source: "Moloco", Err: err}
	}

	rows := make([]domain.RawRow, 0)
	for _, title := range titles {
		values, err := s.client.ReadSheet(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1:Z", title))
		if err != nil {
			return nil, &FetchError{Source: "Moloco", Err: err}
		}

		rows = append(rows, valuesToRawRows(values)...)
	}

	log.ForContext(ctx).WithField("rows", len(rows)).Debug("Planilha Moloco carregada")
	return rows, nil
}

// FetchOtherSources lê apenas a primeira aba da exportação secundária
func (s *Service) FetchOtherSources(ctx context.Context) ([]domain.RawRow, error) {
	spreadsheetID := s.cfg.Sheets.OtherSourcesSheetID

	titles, err := s.client.WorksheetTitles(ctx, spreadsheetID)
	if err != nil {
		return nil, &FetchError{Source: "Other", Err: err}
	}
	if len(titles) == 0 {
		return nil, &FetchError{Source: "Other", Err: fmt.Errorf("planilha %s sem abas", spreadsheetID)}
	}

	values, err := s.client.ReadSheet(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1:Z", titles[0]))
	if err != nil {
		return nil, &FetchError{Source: "Other", Err: err}
	}

	rows := valuesToRawRows(values)
	log.ForContext(ctx).WithField("rows", len(rows)).Debug("Planilha de outras fontes carregada")
	return rows, nil
}

// valuesToRawRows converte a matriz de células em linhas indexadas pelo
// cabeçalho (primeira linha). Linhas mais curtas que o cabeçalho são
// preenchidas até onde existem células.
func valuesToRawRows(values [][]interface{}) []domain.RawRow {
	if len(values) < 2 {
		return nil
	}

	header := make([]string, 0, len(values[0]))
	for _, cell := range values[0] {
		header = append(header, fmt.Sprintf("%v", cell))
	}

	rows := make([]domain.RawRow, 0, len(values)-1)
	for _, line := range values[1:] {
		row := make(domain.RawRow, len(header))
		for i, cell := range line {
			if i >= len(header) {
				break
			}
			row[header[i]] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}

	return rows
}
