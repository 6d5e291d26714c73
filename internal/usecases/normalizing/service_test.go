package normalizing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adspend-report-api/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{name: "vírgula como separador decimal", raw: "100,50", expected: "100.5"},
		{name: "ponto como separador decimal", raw: "1234.56", expected: "1234.56"},
		{name: "espaço de milhar com vírgula", raw: "1 234,56", expected: "1234.56"},
		{name: "espaço não-quebrável de milhar", raw: "1\u00a0234,56", expected: "1234.56"},
		{name: "inteiro simples", raw: "42", expected: "42"},
		{name: "zero é válido", raw: "0", expected: "0"},
		{name: "vírgula não vira decimal quando há ponto", raw: "1,234.56", wantErr: true},
		{name: "texto não numérico", raw: "abc", wantErr: true},
		{name: "célula vazia", raw: "", wantErr: true},
		{name: "custo negativo é rejeitado", raw: "-10,5", wantErr: true},
		{name: "duas vírgulas", raw: "1,234,56", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				var parseErr *NumericParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)),
				"esperado %s, obtido %s", tt.expected, amount)
		})
	}
}

func TestParseEventDate(t *testing.T) {
	expected := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "ISO simples", raw: "2024-05-01"},
		{name: "ISO com horário", raw: "2024-05-01 13:45:00"},
		{name: "ISO com T", raw: "2024-05-01T13:45:00"},
		{name: "formato europeu com pontos", raw: "01.05.2024"},
		{name: "formato com barras", raw: "01/05/2024"},
		{name: "data vazia", raw: "", wantErr: true},
		{name: "texto qualquer", raw: "ontem", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseEventDate(tt.raw)
			if tt.wantErr {
				var parseErr *DateParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			assert.NoError(t, err)
			// O horário deve ser descartado
			assert.Equal(t, expected, parsed)
		})
	}
}

func TestNormalize_FontePrimaria(t *testing.T) {
	rows := []domain.RawRow{
		{"event_time": "2024-05-01", "cost": "100,50", "Bayer id": "buyer-1"},
		{"event_time": "2024-04-30", "cost": "50,00"},
	}

	result := Normalize(rows, SourceOptions{
		SourceName:     "Moloco",
		NativeCurrency: domain.CurrencyUSD,
		Aliases:        MolocoAliases,
	})

	assert.Equal(t, 0, result.Dropped)
	assert.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "Moloco", first.SourceName)
	assert.Equal(t, "buyer-1", first.EntityID)
	assert.Equal(t, domain.CurrencyUSD, first.NativeCurrency)
	assert.True(t, first.CostAmount.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), first.EventDate)

	// EntityID ausente é um estado válido
	assert.Empty(t, result.Records[1].EntityID)
}

func TestNormalize_AliasInsensivelACaixaEEspacos(t *testing.T) {
	rows := []domain.RawRow{
		{"Event_Time": "2024-05-01", "COST": "10", "BAYER ID": "b1"},
		{"event_time": "2024-05-01", "cost": "20", "bayerid": "b2"},
	}

	result := Normalize(rows, SourceOptions{
		SourceName:     "Moloco",
		NativeCurrency: domain.CurrencyUSD,
		Aliases:        MolocoAliases,
	})

	assert.Len(t, result.Records, 2)
	assert.Equal(t, "b1", result.Records[0].EntityID)
	assert.Equal(t, "b2", result.Records[1].EntityID)
}

func TestNormalize_DescartaLinhasInvalidasSemAbortar(t *testing.T) {
	rows := []domain.RawRow{
		{"event_date": "2024-05-01", "costs": "100", "traffic_source": "Unity"},
		{"event_date": "2024-05-01", "costs": "n/a", "traffic_source": "Unity"},
		{"event_date": "quando?", "costs": "50", "traffic_source": "Unity"},
		{"event_date": "2024-05-01", "costs": "200", "traffic_source": "Mintegral"},
	}

	result := Normalize(rows, SourceOptions{
		SourceName:     "Other",
		NativeCurrency: domain.CurrencyReporting,
		Aliases:        OtherSourcesAliases,
	})

	// Uma linha com custo inválido e uma com data inválida caem fora
	assert.Equal(t, 2, result.Dropped)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, "Unity", result.Records[0].SourceName)
	assert.Equal(t, "Mintegral", result.Records[1].SourceName)
}

func TestNormalize_FonteLiteralQuandoColunaAusente(t *testing.T) {
	rows := []domain.RawRow{
		{"event_date": "2024-05-01", "costs": "100"},
	}

	result := Normalize(rows, SourceOptions{
		SourceName:     "Other",
		NativeCurrency: domain.CurrencyReporting,
		Aliases:        OtherSourcesAliases,
	})

	assert.Len(t, result.Records, 1)
	assert.Equal(t, "Other", result.Records[0].SourceName)
}
