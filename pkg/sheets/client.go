package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/config"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/metrics"
)

var (
	errSpreadsheetIDRequired = errors.New("spreadsheet id is required")
	errClientNotInitialized  = errors.New("sheets client not initialized")
)

// Client adapts a Google Sheets spreadsheet to the row store contract. It
// performs no retries; transient failures surface to the caller as
// dependency errors.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	callTimeout   time.Duration
	metrics       *metrics.SaleMetrics
}

// NewClient creates a Sheets client and verifies the configured spreadsheet
// is reachable.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logg *logger.Logger, m *metrics.SaleMetrics) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errSpreadsheetIDRequired
	}

	service, err := sheets.NewService(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	client := &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		callTimeout:   cfg.CallTimeout,
		metrics:       m,
	}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("verifying spreadsheet access: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "sheets client initialized")
	}

	return client, nil
}

func clientOptions(cfg config.SheetsConfig) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.ApplicationCredentials))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))
	return opts
}

// EnsureTable creates the named sheet with header as row 1 when it does not
// exist. An existing sheet is left untouched, header included.
func (c *Client) EnsureTable(ctx context.Context, name string, header []string) error {
	if c == nil || c.service == nil {
		return errClientNotInitialized
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer c.observe("ensure_table", start)

	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return storeError("list sheets", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return nil
		}
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, request).Context(ctx).Do(); err != nil {
		return storeError("add sheet "+name, err)
	}

	headerRow := make([]interface{}, len(header))
	for i, cell := range header {
		headerRow[i] = cell
	}
	_, err = c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!A1", name), &sheets.ValueRange{Values: [][]interface{}{headerRow}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return storeError("write header "+name, err)
	}
	return nil
}

// ReadAll returns the header row and every data row of the named sheet in
// sheet order. A sheet holding only the header yields an empty row set.
func (c *Client) ReadAll(ctx context.Context, name string) ([]string, [][]string, error) {
	if c == nil || c.service == nil {
		return nil, nil, errClientNotInitialized
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer c.observe("read_all", start)

	resp, err := c.service.Spreadsheets.Values.
		Get(c.spreadsheetID, name).
		Context(ctx).Do()
	if err != nil {
		return nil, nil, storeError("read "+name, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	header := stringifyRow(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, stringifyRow(raw))
	}
	return header, rows, nil
}

// AppendRow appends one record to the end of the named sheet.
func (c *Client) AppendRow(ctx context.Context, name string, row []string) error {
	if c == nil || c.service == nil {
		return errClientNotInitialized
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer c.observe("append_row", start)

	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, name, &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return storeError("append to "+name, err)
	}
	return nil
}

// WriteRange overwrites the rectangular region at the sheet-relative A1
// address.
func (c *Client) WriteRange(ctx context.Context, name string, address string, rows [][]string) error {
	if c == nil || c.service == nil {
		return errClientNotInitialized
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer c.observe("write_range", start)

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	_, err := c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!%s", name, address), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return storeError(fmt.Sprintf("write %s!%s", name, address), err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.service == nil {
		return errClientNotInitialized
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	_, err := c.service.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.callTimeout)
}

func (c *Client) observe(operation string, start time.Time) {
	c.metrics.ObserveStoreCall(operation, time.Since(start))
}

func storeError(operation string, err error) error {
	wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sheets: "+operation)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		wrapped = wrapped.WithDetails(map[string]any{
			"status":  apiErr.Code,
			"message": apiErr.Message,
		})
	}
	return wrapped
}

func stringifyRow(raw []interface{}) []string {
	row := make([]string, len(raw))
	for i, cell := range raw {
		switch v := cell.(type) {
		case string:
			row[i] = v
		case nil:
			row[i] = ""
		default:
			row[i] = fmt.Sprint(v)
		}
	}
	return row
}
