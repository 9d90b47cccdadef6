package sheetsclient

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultExportBaseURL is the public Google Sheets host used for CSV exports
const DefaultExportBaseURL = "https://docs.google.com"

// CSVClient reads tabs of a sheet shared as "anyone with the link" through the
// gviz CSV export, without credentials
type CSVClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewCSVClient creates a CSV export client. Empty baseURL selects DefaultExportBaseURL.
func NewCSVClient(httpClient *http.Client, baseURL string) *CSVClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultExportBaseURL
	}
	return &CSVClient{httpClient: httpClient, baseURL: baseURL}
}

// ExportURL builds the CSV export URL for one tab
func (c *CSVClient) ExportURL(spreadsheetID, tab string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.QueryEscape(tab))
}

// Values downloads a tab and parses it. Quoted cells may contain newlines and "" escapes.
func (c *CSVClient) Values(ctx context.Context, spreadsheetID, tab string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(spreadsheetID, tab), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tab %s: %w", tab, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch tab %s: %s", tab, resp.Status)
	}

	return ParseCSV(resp.Body)
}

// ParseCSV reads every record, tolerating ragged rows and stray quotes
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
