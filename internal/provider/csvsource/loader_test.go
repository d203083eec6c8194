package csvsource

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/albapepper/ringside-data/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedNormalizer() *provider.Normalizer {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	return &provider.Normalizer{Now: func() time.Time { return now }}
}

// sourceServer serves path → body; unknown paths return 404.
func sourceServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/data/")]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestLoader(t *testing.T, srv *httptest.Server, workers int) *Loader {
	t.Helper()
	client := NewClient(ClientOptions{
		BaseURL:           srv.URL + "/data",
		RequestsPerMinute: 60000,
		Timeout:           5 * time.Second,
		HTTPClient:        srv.Client(),
	}, quietLogger)
	return NewLoader(client, fixedNormalizer(), workers, quietLogger)
}

func TestLoader_ScenarioOne(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"JohnCena_matches.csv": "date,result,event\n01.03.2023,win,JohnCena defeats TripleH\n",
	})
	loader := newTestLoader(t, srv, 2)

	result := loader.Load(context.Background(), []string{"JohnCena"})

	require.Len(t, result.Matches, 1)
	m := result.Matches[0]
	assert.Equal(t, 2023, m.Year)
	assert.Equal(t, provider.ResultWin, m.Result)
	assert.Equal(t, provider.PromotionIndependent, m.Promotion)
	assert.Equal(t, "TripleH", m.Opponent)
	assert.Empty(t, result.Errors)
}

func TestLoader_HeaderOnlySourceDoesNotAffectOthers(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"CM_Punk_matches.csv":   "date,result,event\n",
		"John_Cena_matches.csv": "date,result,event\n01.03.2023,win,John Cena defeats Edge\n02.03.2023,loss,Edge defeats John Cena\n",
	})
	loader := newTestLoader(t, srv, 2)

	result := loader.Load(context.Background(), []string{"CM_Punk", "John_Cena"})

	require.Len(t, result.Matches, 2)
	assert.Equal(t, 1, result.SourcesEmpty)
	assert.Zero(t, result.SourcesFailed)
	for _, m := range result.Matches {
		assert.Equal(t, "John Cena", m.Wrestler)
	}
	assert.Equal(t, provider.ResultWin, result.Matches[0].Result)
	assert.Equal(t, provider.ResultLoss, result.Matches[1].Result)
}

func TestLoader_FailedFetchIsAbsorbed(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"Sting_matches.csv": "date,event\n01.01.1999,Sting defeats Hogan\n",
	})
	loader := newTestLoader(t, srv, 4)

	result := loader.Load(context.Background(), []string{"Missing_One", "Sting", "Missing_Two"})

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Sting", result.Matches[0].Wrestler)
	assert.Equal(t, 2, result.SourcesFailed)
	assert.Len(t, result.Errors, 2)
	assert.False(t, result.AllFailed())
	assert.Contains(t, result.Summary(), "failed=2")
}

func TestLoader_AllFailed(t *testing.T) {
	srv := sourceServer(t, map[string]string{})
	loader := newTestLoader(t, srv, 2)

	result := loader.Load(context.Background(), []string{"A", "B"})

	assert.Empty(t, result.Matches)
	assert.True(t, result.AllFailed())
}

func TestLoader_RosterOrderAndSourceOrder(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"A_matches.csv": "date,event\n1.1.2020,a1\n2.1.2020,a2\n",
		"B_matches.csv": "date,event\n1.1.2021,b1\n",
		"C_matches.csv": "date,event\n1.1.2022,c1\n2.1.2022,c2\n3.1.2022,c3\n",
	})
	loader := newTestLoader(t, srv, 3)

	result := loader.Load(context.Background(), []string{"C", "A", "B"})

	var events []string
	for _, m := range result.Matches {
		events = append(events, m.Event)
	}
	assert.Equal(t, []string{"c1", "c2", "c3", "a1", "a2", "b1"}, events)
}

func TestLoader_MalformedRowsSkippedIndividually(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"A_matches.csv": "date,result,event\n1.1.2020,win\n2.1.2020,,\n3.1.2020,A defeats B,Show\n",
	})
	loader := newTestLoader(t, srv, 1)

	result := loader.Load(context.Background(), []string{"A"})

	require.Len(t, result.Matches, 1)
	assert.Equal(t, provider.ResultWin, result.Matches[0].Result)
	assert.Equal(t, 3, result.RowsRead)
	assert.Equal(t, 2, result.RowsSkipped)
}

func TestLoader_CancelledContext(t *testing.T) {
	srv := sourceServer(t, map[string]string{"A_matches.csv": "date,event\n1.1.2020,a\n"})
	loader := newTestLoader(t, srv, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := loader.Load(ctx, []string{"A"})

	assert.Empty(t, result.Matches)
	assert.Equal(t, 1, result.SourcesFailed)
}

func TestClient_SourceURLAndByteCap(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"Dr._Britt_Baker_DMD_matches.csv": "aaaaaaa\nbbbbbbb\n" + strings.Repeat("x", 64),
		"Solid_matches.csv":               strings.Repeat("x", 64),
	})
	client := NewClient(ClientOptions{
		BaseURL:           srv.URL + "/data",
		MaxBytes:          20,
		RequestsPerMinute: 60000,
		HTTPClient:        srv.Client(),
	}, quietLogger)

	assert.Equal(t, srv.URL+"/data/Dr._Britt_Baker_DMD_matches.csv", client.SourceURL("Dr._Britt_Baker_DMD"))

	body, err := client.Fetch(context.Background(), "Dr._Britt_Baker_DMD")
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaa\nbbbbbbb\n", string(body))

	body, err = client.Fetch(context.Background(), "Solid")
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestLoader_ByteCapDropsPartialLastRow(t *testing.T) {
	full := "date,result,event\n" +
		"01.01.2020,win,JohnCena defeats Edge\n" +
		"02.01.2020,win,JohnCena defeats TripleH\n"
	srv := sourceServer(t, map[string]string{"JohnCena_matches.csv": full})
	client := NewClient(ClientOptions{
		BaseURL:           srv.URL + "/data",
		MaxBytes:          int64(len(full) - 10),
		RequestsPerMinute: 60000,
		HTTPClient:        srv.Client(),
	}, quietLogger)
	loader := NewLoader(client, fixedNormalizer(), 1, quietLogger)

	result := loader.Load(context.Background(), []string{"JohnCena"})
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Edge", result.Matches[0].Opponent)
	assert.Zero(t, result.RowsSkipped)
}

func TestLoader_QuotesNeverReachOpponent(t *testing.T) {
	srv := sourceServer(t, map[string]string{
		"JohnCena_matches.csv": "date,event\n01.01.2020,JohnCena defeats \"TripleH\" @ MSG\n",
	})
	loader := newTestLoader(t, srv, 1)

	result := loader.Load(context.Background(), []string{"JohnCena"})
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "TripleH", result.Matches[0].Opponent)
	assert.Equal(t, "MSG", result.Matches[0].Location)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := sourceServer(t, nil)
	client := NewClient(ClientOptions{BaseURL: srv.URL + "/data", RequestsPerMinute: 60000, HTTPClient: srv.Client()}, quietLogger)

	_, err := client.Fetch(context.Background(), "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewLoader_NilFetcherPanics(t *testing.T) {
	assert.Panics(t, func() { NewLoader(nil, nil, 1, nil) })
}
