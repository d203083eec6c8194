package seed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/ringside-data/internal/provider"
)

func mt(wrestler, event string) provider.Match {
	return provider.Match{
		Wrestler:   wrestler,
		Event:      event,
		ParsedDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Result:     provider.ResultUnknown,
		Promotion:  provider.PromotionIndependent,
	}
}

func TestGroupByWrestler(t *testing.T) {
	matches := []provider.Match{
		mt("CM Punk", "p1"),
		mt("CM Punk", "p2"),
		mt("John Cena", "c1"),
	}

	batches := groupByWrestler([]string{"Sting", "CM_Punk", "John_Cena"}, matches)

	require.Len(t, batches, 2)
	assert.Equal(t, "CM_Punk", batches[0].Identity)
	assert.Equal(t, "CM Punk", batches[0].Name)
	assert.Equal(t, []string{"p1", "p2"}, []string{batches[0].Matches[0].Event, batches[0].Matches[1].Event})
	assert.Equal(t, "John_Cena", batches[1].Identity)
	assert.Len(t, batches[1].Matches, 1)
}

func TestGroupByWrestler_DuplicateIdentitiesAndStrays(t *testing.T) {
	batches := groupByWrestler(
		[]string{"Edge", "Edge"},
		[]provider.Match{mt("Edge", "e1"), mt("Christian", "x1")},
	)
	require.Len(t, batches, 2)
	assert.Equal(t, "Edge", batches[0].Name)
	assert.Equal(t, "Christian", batches[1].Identity)
}

func TestGroupByWrestler_Empty(t *testing.T) {
	assert.Empty(t, groupByWrestler([]string{"A"}, nil))
	assert.Empty(t, groupByWrestler(nil, nil))
}

func TestMatchRowMatchesColumns(t *testing.T) {
	m := mt("Edge", "WWE Raw")
	m.PPV = true
	row := matchRow(7, m)
	require.Len(t, row, len(matchColumns))
	assert.Equal(t, "Edge", row[0])
	assert.Equal(t, 7, row[1])
	assert.Equal(t, "unknown", row[7])
	assert.Equal(t, "Independent", row[9])
	assert.Equal(t, true, row[12])
}

func TestSeedResult(t *testing.T) {
	r := SeedResult{SourcesLoaded: 3, SourcesFailed: 1, WrestlersUpserted: 2, MatchesWritten: 10, Notified: true}
	r.AddError("boom")
	r.AddErrorf("replace %s: %v", "Edge", "timeout")

	assert.Equal(t, 3, r.SourcesLoaded)
	assert.True(t, r.Notified)
	assert.Equal(t, []string{"boom", "replace Edge: timeout"}, r.Errors)
	assert.Equal(t, "sources=3 failed=1 wrestlers=2 matches=10 notified=true errors=2", r.Summary())
}

func TestStoredResult(t *testing.T) {
	assert.Equal(t, provider.ResultLoss, storedResult("loss"))
	assert.Equal(t, provider.ResultUnknown, storedResult("unknown"))
	assert.Equal(t, provider.ResultUnknown, storedResult("Win"))
	assert.Equal(t, provider.ResultUnknown, storedResult(""))
}

func TestSeedEventPayload(t *testing.T) {
	b, err := json.Marshal(SeedEvent{Wrestlers: 2, Matches: 40, Timestamp: 1700000000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"wrestlers":2,"matches":40,"ts":1700000000}`, string(b))
}

func TestNewMatchReader_NilPoolPanics(t *testing.T) {
	assert.Panics(t, func() { NewMatchReader(nil, nil) })
}
