package sheetsclient

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Source reads a whole sheet tab as rows of cell text, header row first
type Source interface {
	Values(ctx context.Context, spreadsheetID, tab string) ([][]string, error)
}

var (
	_ Source = (*Client)(nil)
	_ Source = (*CSVClient)(nil)
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
}

// Options selects how the API client authenticates. A credentials file takes
// precedence over an API key.
type Options struct {
	APIKey          string
	CredentialsFile string
	// HTTPClient and Endpoint override transport, mainly for tests
	HTTPClient *http.Client
	Endpoint   string
}

// NewClient creates a read-only Sheets API client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var clientOpts []option.ClientOption

	switch {
	case opts.HTTPClient != nil:
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	case opts.CredentialsFile != "":
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	default:
		return nil, fmt.Errorf("sheets API requires an API key or a credentials file")
	}

	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// Service returns the underlying sheets service for direct API access
func (c *Client) Service() *sheets.Service {
	return c.service
}

// GetValues reads values from a spreadsheet range
func (c *Client) GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}

// Values reads a tab and renders every cell as text
func (c *Client) Values(ctx context.Context, spreadsheetID, tab string) ([][]string, error) {
	values, err := c.GetValues(ctx, spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}

	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprint(cell)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}
