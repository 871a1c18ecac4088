package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/spentcli/spent/internal/common"
	"github.com/spentcli/spent/internal/model"
	"github.com/spentcli/spent/internal/stats"
)

// Writer exports monthly expense reports to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  *Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config *Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write publishes one month's expenses and dashboard stats, replacing any
// previous contents of the sheet. Sheets API writes are rate limited, so
// they go through the shared retry helper.
func (w *Writer) Write(ctx context.Context, dashboard *stats.Dashboard, expenses []model.Expense) error {
	w.logger.Info("starting report export",
		"expenses", len(expenses),
		"month", dashboard.Month,
		"year", dashboard.Year)

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	values := w.prepareReportData(dashboard, expenses)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service from whichever
// auth method the config carries.
func createSheetsService(ctx context.Context, config *Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch {
	case config.ServiceAccountPath != "":
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)

	case config.RefreshToken != "":
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = oauthConfig.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})

	default:
		token, err := GetOrCreateToken(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("oauth flow failed: %w", err)
		}
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets the configured spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created spreadsheet",
		"id", created.SpreadsheetId,
		"title", w.config.SpreadsheetName)

	return created.SpreadsheetId, nil
}

// prepareReportData lays the report out as rows: header stats, category
// breakdown, then every expense.
func (w *Writer) prepareReportData(dashboard *stats.Dashboard, expenses []model.Expense) [][]any {
	values := [][]any{
		{fmt.Sprintf("Expense Report: %s %d", dashboard.Month, dashboard.Year)},
		{},
		{"Total Spent", dashboard.TotalExpenses},
		{"Average Expense", dashboard.AverageExpense},
		{"Transactions", dashboard.ExpenseCount},
		{},
		{"Category", "Amount", "Count"},
	}

	for _, item := range dashboard.Breakdown {
		values = append(values, []any{item.Category, item.Amount, item.Count})
	}

	values = append(values,
		[]any{},
		[]any{"Date", "Category", "Amount", "Notes"},
	)

	for _, e := range expenses {
		values = append(values, []any{
			e.Date.String(),
			model.CategoryByValue(e.Category).Label,
			e.Amount,
			e.Notes,
		})
	}

	return values
}

// writeData replaces the sheet's contents with the prepared rows.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	clearReq := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{})
	if _, err := clearReq.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: values}
	updateReq := w.service.Spreadsheets.Values.Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED")

	if _, err := updateReq.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}

	return nil
}
