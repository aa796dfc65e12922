package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

type fakeGoogle struct {
	rows     [][]string
	appended [][]string
	files    []map[string]string
	status   int
	hang     bool
	lastQ    string
}

func (f *fakeGoogle) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		f.lastQ = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"files": f.files})
	})
	mux.HandleFunc("/v4/spreadsheets/", func(w http.ResponseWriter, r *http.Request) {
		if f.hang {
			<-r.Context().Done()
			return
		}
		if f.status != 0 {
			http.Error(w, "quota exceeded", f.status)
			return
		}
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/v4/spreadsheets/sheet-1/values/'Responses':append", r.URL.Path)
			assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
			var body valueRange
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.appended = append(f.appended, body.Values...)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		case http.MethodGet:
			assert.Equal(t, "/v4/spreadsheets/sheet-1/values/'Responses'", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(valueRange{Range: "Responses!A1:C3", Values: f.rows})
		}
	})
	return mux
}

func newTestClient(t *testing.T, fake *fakeGoogle, cfg Config) (*Client, *http.Client) {
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = "AgenticAI_Quiz_Leaderboard"
	}
	cfg.SheetsBaseURL = srv.URL
	cfg.DriveBaseURL = srv.URL
	httpClient := srv.Client()
	client, err := NewClientWithOptions(context.Background(), cfg, zerolog.Nop(), option.WithHTTPClient(httpClient))
	require.NoError(t, err)
	return client, httpClient
}

func TestSheetTableAppendAndRead(t *testing.T) {
	fake := &fakeGoogle{rows: [][]string{{"Name", "Score", "Timestamp"}, {"Ana", "2", "2024-05-01 10:00:00"}}}
	client, _ := newTestClient(t, fake, Config{SpreadsheetID: "sheet-1"})
	table := client.Table("Responses")

	require.NoError(t, table.Append(context.Background(), []string{"Ana", "2", "2024-05-01 10:00:00"}))
	assert.Equal(t, [][]string{{"Ana", "2", "2024-05-01 10:00:00"}}, fake.appended)

	rows, err := table.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.rows, rows)
}

func TestSheetTableSurfacesAPIError(t *testing.T) {
	fake := &fakeGoogle{status: http.StatusTooManyRequests}
	client, _ := newTestClient(t, fake, Config{SpreadsheetID: "sheet-1"})

	err := client.Table("Responses").Append(context.Background(), []string{"x"})
	require.Error(t, err)
	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
	assert.Contains(t, apiErr.Body, "quota exceeded")
}

func TestSheetTableTimesOutSlowCalls(t *testing.T) {
	fake := &fakeGoogle{hang: true}
	client, httpClient := newTestClient(t, fake, Config{SpreadsheetID: "sheet-1", Timeout: 50 * time.Millisecond})

	_, err := client.Table("Responses").ReadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, httpClient.Timeout, "the shared http client must keep its own timeout")
}

func TestResolveLooksUpSpreadsheetByName(t *testing.T) {
	fake := &fakeGoogle{files: []map[string]string{{"id": "sheet-1", "name": "AgenticAI_Quiz_Leaderboard"}}}
	client, _ := newTestClient(t, fake, Config{})

	_, err := client.Table("Responses").ReadAll(context.Background())
	assert.Error(t, err, "reads must fail before the spreadsheet is resolved")

	require.NoError(t, client.Resolve(context.Background()))
	assert.Equal(t, "sheet-1", client.SpreadsheetID())
	assert.Contains(t, fake.lastQ, "name = 'AgenticAI_Quiz_Leaderboard'")
}

func TestResolveEscapesQuotesAndBackslashes(t *testing.T) {
	fake := &fakeGoogle{files: []map[string]string{{"id": "sheet-2", "name": `Ops\Team's Quiz`}}}
	client, _ := newTestClient(t, fake, Config{SpreadsheetName: `Ops\Team's Quiz`})

	require.NoError(t, client.Resolve(context.Background()))
	assert.Contains(t, fake.lastQ, `name = 'Ops\\Team\'s Quiz'`)
}

func TestResolveNotFound(t *testing.T) {
	client, _ := newTestClient(t, &fakeGoogle{}, Config{})

	err := client.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrSpreadsheetNotFound)
}

func TestNewClientRejectsBadCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{CredentialsJSON: "{not json"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestEnsureHeaderOnlyWritesEmptyTables(t *testing.T) {
	ctx := context.Background()
	empty := NewMemoryTable()
	require.NoError(t, EnsureHeader(ctx, empty, []string{"Name", "Score", "Timestamp"}))
	rows, _ := empty.ReadAll(ctx)
	assert.Equal(t, [][]string{{"Name", "Score", "Timestamp"}}, rows)

	seeded := NewMemoryTable("Name", "Score", "Timestamp")
	require.NoError(t, EnsureHeader(ctx, seeded, []string{"other"}))
	rows, _ = seeded.ReadAll(ctx)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Name", rows[0][0])
}

func TestMemoryTableReturnsCopies(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable("a")
	row := []string{"1"}
	require.NoError(t, table.Append(ctx, row))
	row[0] = "mutated"

	rows, err := table.ReadAll(ctx)
	require.NoError(t, err)
	rows[0][0] = "mutated"

	again, _ := table.ReadAll(ctx)
	assert.Equal(t, [][]string{{"a"}, {"1"}}, again)
}
