// Package sheets is the spreadsheet-backed datastore: each worksheet is an
// append-only table that can be read back whole, header row included.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account. Drive is needed to look a
// spreadsheet up by name.
var Scopes = []string{
	sheetsapi.SpreadsheetsScope,
	drive.DriveScope,
}

// ErrSpreadsheetNotFound is returned when a name lookup matches nothing.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

const defaultTimeout = 10 * time.Second

// Table is a single worksheet used as an append-only log.
type Table interface {
	Append(ctx context.Context, row []string) error
	ReadAll(ctx context.Context) ([][]string, error)
}

// Config holds connection details for the Sheets and Drive APIs. Empty base
// URLs use the public Google endpoints.
type Config struct {
	CredentialsJSON string
	SpreadsheetID   string
	SpreadsheetName string
	SheetsBaseURL   string
	DriveBaseURL    string
	Timeout         time.Duration
}

// Client talks to one spreadsheet.
type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	files         *drive.FilesService
	timeout       time.Duration
	spreadsheetID string
	name          string
	logger        zerolog.Logger
}

// NewClient authenticates with the service account credentials bundle.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	jwtCfg, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	return NewClientWithOptions(ctx, cfg, logger, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
}

// NewClientWithOptions builds the Sheets and Drive services from opts, which
// must carry authentication (or option.WithoutAuthentication).
func NewClientWithOptions(ctx context.Context, cfg Config, logger zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	sheetsOpts := opts
	if cfg.SheetsBaseURL != "" {
		sheetsOpts = append(append([]option.ClientOption(nil), opts...),
			option.WithEndpoint(strings.TrimSuffix(cfg.SheetsBaseURL, "/")+"/"))
	}
	sheetsSvc, err := sheetsapi.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	driveOpts := opts
	if cfg.DriveBaseURL != "" {
		driveOpts = append(append([]option.ClientOption(nil), opts...),
			option.WithEndpoint(strings.TrimSuffix(cfg.DriveBaseURL, "/")+"/drive/v3/"))
	}
	driveSvc, err := drive.NewService(ctx, driveOpts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		values:        sheetsSvc.Spreadsheets.Values,
		files:         driveSvc.Files,
		timeout:       timeout,
		spreadsheetID: cfg.SpreadsheetID,
		name:          cfg.SpreadsheetName,
		logger:        logger.With().Str("component", "sheets").Logger(),
	}, nil
}

// SpreadsheetID returns the resolved spreadsheet ID (empty until resolved).
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// Resolve looks the spreadsheet up by name when no ID was configured.
func (c *Client) Resolve(ctx context.Context) error {
	if c.spreadsheetID != "" {
		return nil
	}
	if c.name == "" {
		return fmt.Errorf("neither spreadsheet id nor name configured")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	list, err := c.files.List().
		Q(driveNameQuery(c.name)).
		Fields("files(id,name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("drive lookup: %w", err)
	}
	if len(list.Files) == 0 {
		return fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, c.name)
	}

	c.spreadsheetID = list.Files[0].Id
	c.logger.Info().Str("spreadsheet", c.name).Str("id", c.spreadsheetID).Msg("spreadsheet resolved")
	return nil
}

// driveNameQuery builds a Drive search for a spreadsheet titled name. Inside
// a query string literal, backslashes and single quotes are escaped.
func driveNameQuery(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", escaped)
}

// Table returns a handle for the named worksheet.
func (c *Client) Table(sheet string) *SheetTable {
	return &SheetTable{client: c, sheet: sheet}
}

// withTimeout bounds a single API call.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
