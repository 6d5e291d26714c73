package normalizing

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/adspend-report-api/internal/domain"
)

// SourceOptions parametriza a normalização de uma fonte de dados.
// SourceName é usado como literal fixo quando a planilha não tem coluna de
// fonte própria (caso da exportação Moloco).
type SourceOptions struct {
	SourceName     string
	NativeCurrency domain.Currency
	Aliases        map[string]string
}

// Result carrega os registros canônicos e a contagem de linhas descartadas
type Result struct {
	Records []domain.CostRecord
	Dropped int
}

// Formatos de data aceitos, do mais comum para o mais raro
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// Normalize converte linhas brutas de planilha em registros canônicos de custo.
// Transformação pura: linhas com custo ou data inválidos são descartadas uma a
// uma, sem abortar o restante da carga.
func Normalize(rows []domain.RawRow, opts SourceOptions) Result {
	result := Result{Records: make([]domain.CostRecord, 0, len(rows))}

	for _, row := range rows {
		record, err := normalizeRow(row, opts)
		if err != nil {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result
}

func normalizeRow(row domain.RawRow, opts SourceOptions) (domain.CostRecord, error) {
	fields := canonicalFields(row, opts.Aliases)

	eventDate, err := ParseEventDate(fields[FieldEventDate])
	if err != nil {
		return domain.CostRecord{}, err
	}

	amount, err := ParseAmount(fields[FieldCost])
	if err != nil {
		return domain.CostRecord{}, err
	}

	sourceName := fields[FieldSource]
	if sourceName == "" {
		sourceName = opts.SourceName
	}

	return domain.CostRecord{
		EventDate:      eventDate,
		SourceName:     sourceName,
		EntityID:       strings.TrimSpace(fields[FieldEntityID]),
		CostAmount:     amount,
		NativeCurrency: opts.NativeCurrency,
	}, nil
}

// canonicalFields projeta a linha bruta nos campos canônicos via tabela de alias
func canonicalFields(row domain.RawRow, aliases map[string]string) map[string]string {
	fields := make(map[string]string, len(aliases))

	for column, value := range row {
		field, ok := aliases[normalizeKey(column)]
		if !ok {
			continue
		}
		// A primeira coluna que casa com o campo vence
		if _, exists := fields[field]; !exists {
			fields[field] = value
		}
	}

	return fields
}

// normalizeKey deixa o nome de coluna minúsculo e sem nenhum espaço interno,
// de forma que "Bayer id", "bayerid" e "BAYER ID" casem com o mesmo alias
func normalizeKey(column string) string {
	return stripWhitespace(strings.ToLower(column))
}

// ParseAmount interpreta uma célula de custo: remove todo whitespace (inclusive
// NBSP de formatação de milhar), trata vírgula como separador decimal quando não
// há ponto, e exige um decimal não-negativo.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := stripWhitespace(raw)
	if !strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, &NumericParseError{Column: FieldCost, Value: raw}
	}

	return amount, nil
}

// ParseEventDate aceita ISO-8601 e os formatos textuais comuns das planilhas.
// O horário é descartado: só a data de calendário tem semântica no pipeline.
func ParseEventDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &DateParseError{Column: FieldEventDate, Value: raw}
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, &DateParseError{Column: FieldEventDate, Value: raw}
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
