package gsheets

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client encapsula o acesso à API do Google Sheets via service account
type Client struct {
	service *sheets.Service
}

func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar o cliente do Google Sheets")
	}

	return &Client{service: service}, nil
}

// WorksheetTitles lista os títulos de todas as abas da planilha
func (c *Client) WorksheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := c.service.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar abas da planilha %s", spreadsheetID)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}

	return titles, nil
}

// ReadSheet lê todas as células do intervalo informado
func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o intervalo %s da planilha %s", readRange, spreadsheetID)
	}

	return resp.Values, nil
}
