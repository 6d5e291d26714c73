// Package cbr consulta as cotações oficiais diárias do Banco Central da Rússia
// (XML_daily.asp), a fonte de taxas do dashboard.
package cbr

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/adspend-report-api/internal/config"
	"golang.org/x/text/encoding/charmap"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Rates.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Rates.RequestTimeout,
		},
	}
}

// O documento XML_daily usa windows-1251 e vírgula como separador decimal
type valCurs struct {
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	CharCode string `xml:"CharCode"`
	Nominal  int64  `xml:"Nominal"`
	Value    string `xml:"Value"`
}

// DailyRates busca as taxas USD e EUR contra o rublo para a data informada.
// Moeda ausente no documento resulta em ponteiro nulo, sem erro; erro só em
// falha de rede ou documento malformado.
func (c *Client) DailyRates(ctx context.Context, asOf time.Time) (usd, eur *decimal.Decimal, err error) {
	url := fmt.Sprintf("%s?date_req=%s", c.baseURL, asOf.Format("02/01/2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao criar a requisição de cotações")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao consultar o provedor de cotações")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, errors.Errorf("provedor de cotações respondeu %s", resp.Status)
	}

	doc, err := decodeValCurs(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	for _, v := range doc.Valutes {
		rate, parseErr := parseRate(v)
		if parseErr != nil {
			continue
		}

		switch v.CharCode {
		case "USD":
			usd = rate
		case "EUR":
			eur = rate
		}
	}

	return usd, eur, nil
}

func decodeValCurs(body io.Reader) (*valCurs, error) {
	decoder := xml.NewDecoder(body)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "windows-1251") {
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		}
		return nil, errors.Errorf("charset não suportado: %s", charset)
	}

	doc := &valCurs{}
	if err := decoder.Decode(doc); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar o XML de cotações")
	}

	return doc, nil
}

// parseRate normaliza o valor ("90,1234") e divide pelo nominal da moeda
func parseRate(v valute) (*decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.ReplaceAll(v.Value, ",", "."))
	if err != nil {
		return nil, err
	}

	nominal := v.Nominal
	if nominal <= 0 {
		nominal = 1
	}

	rate := value.Div(decimal.NewFromInt(nominal))
	return &rate, nil
}
