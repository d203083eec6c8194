package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/ringside-data/internal/provider"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func match(wrestler, opponent string, r provider.Result, p provider.Promotion, date time.Time) provider.Match {
	return provider.Match{
		Date:       date.Format("2.1.2006"),
		ParsedDate: date,
		DateParsed: true,
		Year:       date.Year(),
		Wrestler:   wrestler,
		Opponent:   opponent,
		Result:     r,
		Promotion:  p,
		MatchTime:  provider.DefaultMatchTime,
	}
}

// fixture: two wrestlers with 10 wins and 10 losses total.
func scenarioThree() []provider.Match {
	var out []provider.Match
	for i := 0; i < 10; i++ {
		out = append(out, match("Edge", "Christian", provider.ResultWin, provider.PromotionWWE, day(2020, time.January, i+1)))
	}
	for i := 0; i < 10; i++ {
		out = append(out, match("Sting", "Vader", provider.ResultLoss, provider.PromotionAEW, day(2021, time.March, i+1)))
	}
	return out
}

func mixedMatches() []provider.Match {
	return []provider.Match{
		match("John Cena", "Edge", provider.ResultWin, provider.PromotionWWE, day(2023, time.March, 1)),
		match("John Cena", "Randy Orton", provider.ResultLoss, provider.PromotionWWE, day(2022, time.May, 2)),
		match("John Cena", "Kenny Omega", provider.ResultUnknown, provider.PromotionAEW, day(2023, time.June, 3)),
		match("Kenny Omega", "Okada", provider.ResultWin, provider.PromotionNJPW, day(2018, time.January, 4)),
		match("Kenny Omega", "John Cena", provider.ResultDraw, provider.PromotionAEW, day(2023, time.June, 3)),
		match("AJ Styles", "Unknown", provider.ResultWin, provider.PromotionTNA, day(2008, time.July, 13)),
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		wins, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, -1, 0},
	}
	for _, tt := range tests {
		got := WinRate(tt.wins, tt.total)
		assert.Equal(t, tt.want, got, "WinRate(%d, %d)", tt.wins, tt.total)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestComputeMetrics_ScenarioThree(t *testing.T) {
	matches := scenarioThree()
	profiles := Summarize(matches)

	m := ComputeMetrics(Filter(matches, provider.FilterState{}), profiles)

	assert.Equal(t, 50, m.WinRate)
	assert.Equal(t, 20, m.TotalMatches)
	assert.Equal(t, 2, m.TotalWrestlers)
	assert.Equal(t, 2, m.TotalPromotions)
	assert.Equal(t, 10, m.AvgMatchesPerWrestler)
}

func TestComputeMetrics_EmptyInput(t *testing.T) {
	assert.Equal(t, provider.DashboardMetrics{}, ComputeMetrics(nil, nil))
	assert.Empty(t, Summarize(nil))
	assert.Empty(t, Filter(nil, provider.FilterState{SearchTerm: "x"}))
	assert.Empty(t, Timeline(nil))
	assert.Empty(t, PromotionBreakdown(nil))
	assert.Empty(t, VenueBreakdown(nil))
}

func TestComputeMetrics_FloorAverage(t *testing.T) {
	matches := mixedMatches()
	m := ComputeMetrics(matches, Summarize(matches))
	assert.Equal(t, 6, m.TotalMatches)
	assert.Equal(t, 3, m.TotalWrestlers)
	assert.Equal(t, 2, m.AvgMatchesPerWrestler)
	assert.Equal(t, 4, m.TotalPromotions)
	assert.Equal(t, 50, m.WinRate)
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	matches := mixedMatches()
	profiles := Summarize(matches)
	f := provider.FilterState{SelectedYear: "2023"}

	first := ComputeMetrics(Filter(matches, f), profiles)
	second := ComputeMetrics(Filter(matches, f), profiles)
	assert.Equal(t, first, second)
	assert.Equal(t, Summarize(matches), profiles)
}

func TestFilter(t *testing.T) {
	matches := mixedMatches()
	matches[0].PPV = true // Cena win over Edge
	matches[4].PPV = true // Omega draw with Cena
	tests := []struct {
		name string
		f    provider.FilterState
		want int
	}{
		{"no constraints", provider.FilterState{}, 6},
		{"search wrestler", provider.FilterState{SearchTerm: "cena"}, 4},
		{"search opponent", provider.FilterState{SearchTerm: "OKADA"}, 1},
		{"search trimmed", provider.FilterState{SearchTerm: "  omega "}, 3},
		{"promotion", provider.FilterState{SelectedPromotion: "WWE"}, 2},
		{"year", provider.FilterState{SelectedYear: "2023"}, 3},
		{"non-numeric year", provider.FilterState{SelectedYear: "abcd"}, 0},
		{"result", provider.FilterState{SelectedResult: "win"}, 3},
		{"combined", provider.FilterState{SearchTerm: "cena", SelectedYear: "2023", SelectedResult: "win"}, 1},
		{"min matches ignored", provider.FilterState{MinMatches: 100}, 6},
		{"event type all", provider.FilterState{SelectedEventType: provider.EventTypeAll}, 6},
		{"event type ppv", provider.FilterState{SelectedEventType: provider.EventTypePPV}, 2},
		{"event type tv", provider.FilterState{SelectedEventType: provider.EventTypeTV}, 4},
		{"ppv and search", provider.FilterState{SelectedEventType: provider.EventTypePPV, SearchTerm: "cena"}, 2},
		{"tv and result", provider.FilterState{SelectedEventType: provider.EventTypeTV, SelectedResult: "win"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Filter(matches, tt.f), tt.want)
		})
	}
}

func TestFilter_ConstraintsComposeAsSubsets(t *testing.T) {
	matches := mixedMatches()
	base := provider.FilterState{SearchTerm: "cena"}
	narrowed := base
	narrowed.SelectedPromotion = "WWE"

	wide := Filter(matches, base)
	narrow := Filter(matches, narrowed)

	assert.LessOrEqual(t, len(narrow), len(wide))
	for _, m := range narrow {
		assert.Contains(t, wide, m)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	matches := mixedMatches()
	before := append([]provider.Match(nil), matches...)
	_ = Filter(matches, provider.FilterState{SelectedResult: "loss"})
	assert.Equal(t, before, matches)
}

func TestListProfiles_MinMatchesLeavesMetricsAlone(t *testing.T) {
	matches := mixedMatches()
	profiles := Summarize(matches)
	f := provider.FilterState{MinMatches: 3}

	listed := ListProfiles(profiles, f)
	require.Len(t, listed, 1)
	assert.Equal(t, "John Cena", listed[0].Name)

	m := ComputeMetrics(Filter(matches, f), profiles)
	assert.Equal(t, 3, m.TotalWrestlers)
	assert.Equal(t, 6, m.TotalMatches)
}

func TestListProfiles_MinMatchesAboveEveryCount(t *testing.T) {
	matches := mixedMatches()
	profiles := Summarize(matches)
	f := provider.FilterState{MinMatches: 4}

	assert.Empty(t, ListProfiles(profiles, f))

	m := ComputeMetrics(Filter(matches, f), profiles)
	assert.Equal(t, ComputeMetrics(matches, profiles), m)
	assert.Equal(t, 6, m.TotalMatches)
}

func TestListProfiles_NameSearch(t *testing.T) {
	profiles := Summarize(mixedMatches())
	listed := ListProfiles(profiles, provider.FilterState{SearchTerm: "styles"})
	require.Len(t, listed, 1)
	assert.Equal(t, "AJ Styles", listed[0].Name)
}

func TestSummarize(t *testing.T) {
	profiles := Summarize(mixedMatches())
	require.Len(t, profiles, 3)

	assert.Equal(t, []string{"John Cena", "Kenny Omega", "AJ Styles"},
		[]string{profiles[0].Name, profiles[1].Name, profiles[2].Name})

	cena := profiles[0]
	assert.Nil(t, cena.Matches)
	assert.Equal(t, 3, cena.TotalMatches)
	assert.Equal(t, 1, cena.Wins)
	assert.Equal(t, 1, cena.Losses)
	assert.Equal(t, 0, cena.Draws)
	assert.Equal(t, 33, cena.WinRate)
	assert.Equal(t, day(2023, time.June, 3), cena.LastMatch)
	assert.Equal(t, day(2022, time.May, 2), cena.CareerStart)
	assert.Equal(t, provider.PromotionAEW, cena.Promotion)

	omega := profiles[1]
	assert.Equal(t, 1, omega.Draws)
	assert.Equal(t, 50, omega.WinRate)
}

func TestSummarize_PPVMatches(t *testing.T) {
	matches := mixedMatches()
	matches[0].PPV = true
	matches[2].PPV = true
	matches[3].PPV = true

	byName := make(map[string]provider.WrestlerProfile)
	for _, p := range Summarize(matches) {
		byName[p.Name] = p
	}
	assert.Equal(t, 2, byName["John Cena"].PPVMatches)
	assert.Equal(t, 1, byName["Kenny Omega"].PPVMatches)
	assert.Zero(t, byName["AJ Styles"].PPVMatches)
	assert.Equal(t, 2, Materialize("John Cena", matches).PPVMatches)
}

func TestSummarize_AgreesWithMaterialize(t *testing.T) {
	matches := mixedMatches()
	matches[0].MatchTime = "12:30"
	matches[1].MatchTime = "8:00"
	matches[2].PPV = true

	for _, summary := range Summarize(matches) {
		full := Materialize(summary.Name, matches)
		require.Len(t, full.Matches, summary.TotalMatches)
		full.Matches = nil
		assert.Equal(t, summary, full, summary.Name)
	}
}

func TestMaterialize(t *testing.T) {
	matches := mixedMatches()
	p := Materialize("John Cena", matches)

	require.Len(t, p.Matches, 3)
	for i := 1; i < len(p.Matches); i++ {
		assert.False(t, p.Matches[i].ParsedDate.Before(p.Matches[i-1].ParsedDate))
	}
	assert.Equal(t, day(2023, time.June, 3), p.LastMatch)
	assert.Equal(t, p.LastMatch, p.CareerEnd)
	assert.Equal(t, provider.PromotionAEW, p.Promotion)

	p.Matches[0].Opponent = "changed"
	for _, m := range matches {
		assert.NotEqual(t, "changed", m.Opponent)
	}
}

func TestMaterialize_EqualDatesLastSourceRowWins(t *testing.T) {
	d := day(2024, time.April, 6)
	matches := []provider.Match{
		match("Sting", "A", provider.ResultWin, provider.PromotionWWE, d),
		match("Sting", "B", provider.ResultWin, provider.PromotionAEW, d),
	}
	assert.Equal(t, provider.PromotionAEW, Materialize("Sting", matches).Promotion)
	assert.Equal(t, provider.PromotionAEW, Summarize(matches)[0].Promotion)
}

func TestMaterialize_UnknownWrestler(t *testing.T) {
	p := Materialize("Nobody", mixedMatches())
	assert.Equal(t, "Nobody", p.Name)
	assert.Zero(t, p.TotalMatches)
	assert.Zero(t, p.WinRate)
	assert.Equal(t, provider.PromotionIndependent, p.Promotion)
	assert.Empty(t, p.Matches)
}

func TestMaterialize_AverageMinutes(t *testing.T) {
	matches := mixedMatches()
	matches[0].MatchTime = "12:30"
	matches[1].MatchTime = "8:00"
	p := Materialize("John Cena", matches)
	assert.InDelta(t, 10.25, p.AvgMatchMinutes, 0.001)
}

func TestTimeline(t *testing.T) {
	got := Timeline(mixedMatches())
	assert.Equal(t, []YearCount{
		{Year: 2008, Count: 1, Wins: 1},
		{Year: 2018, Count: 1, Wins: 1},
		{Year: 2022, Count: 1, Losses: 1},
		{Year: 2023, Count: 3, Wins: 1},
	}, got)
}

func TestPromotionBreakdown(t *testing.T) {
	got := PromotionBreakdown(mixedMatches())
	assert.Equal(t, []PromotionShare{
		{Promotion: provider.PromotionWWE, Count: 2, Percent: 33.3},
		{Promotion: provider.PromotionAEW, Count: 2, Percent: 33.3},
		{Promotion: provider.PromotionNJPW, Count: 1, Percent: 16.7},
		{Promotion: provider.PromotionTNA, Count: 1, Percent: 16.7},
	}, got)
}

func TestVenueBreakdown(t *testing.T) {
	matches := mixedMatches()
	matches[0].Location = "Madison Square Garden in New York, New York, USA"
	matches[0].MatchTime = "12:30"
	matches[1].Location = "Madison Square Garden in New York, New York, USA"
	matches[1].MatchTime = "8:00"
	matches[2].Location = "Madison Square Garden in New York, New York, USA"
	matches[3].Location = "Tokyo Dome in Tokyo, Japan"
	matches[4].Location = "Madison Square Garden in New York, New York, USA"
	matches[5].Location = ""

	got := VenueBreakdown(matches)
	require.Len(t, got, 3)

	msg := got[0]
	assert.Equal(t, "Madison Square Garden", msg.Name)
	assert.Equal(t, "New York", msg.City)
	assert.Equal(t, "USA", msg.Country)
	assert.Equal(t, 4, msg.Matches)
	assert.Equal(t, []string{"John Cena", "Kenny Omega"}, msg.Wrestlers)
	assert.Equal(t, []provider.Promotion{provider.PromotionWWE, provider.PromotionAEW}, msg.Promotions)
	assert.InDelta(t, 10.25, msg.AvgMatchMinutes, 0.001)

	assert.Equal(t, VenueStat{
		Name: "Tokyo Dome", City: "Tokyo", Country: "Japan", Matches: 1,
		Wrestlers:  []string{"Kenny Omega"},
		Promotions: []provider.Promotion{provider.PromotionNJPW},
	}, got[1])

	assert.Equal(t, UnknownVenue, got[2].Name)
	assert.Equal(t, UnknownCity, got[2].City)
	assert.Equal(t, UnknownCountry, got[2].Country)
}

func TestVenueBreakdown_SameVenueNameDifferentCity(t *testing.T) {
	a := match("Edge", "Christian", provider.ResultWin, provider.PromotionWWE, day(2020, time.January, 1))
	a.Location = "Civic Center in Hartford, USA"
	b := a
	b.Location = "Civic Center in Providence, USA"

	got := VenueBreakdown([]provider.Match{a, b, a})
	require.Len(t, got, 2)
	assert.Equal(t, "Hartford", got[0].City)
	assert.Equal(t, 2, got[0].Matches)
	assert.Equal(t, "Providence", got[1].City)
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in                     string
		venue, city, country string
	}{
		{"MetLife Stadium in East Rutherford, New Jersey, USA", "MetLife Stadium", "East Rutherford", "USA"},
		{"Tokyo Dome in Tokyo", "Tokyo Dome", "Tokyo", "Tokyo"},
		{"The Arena", "The Arena", UnknownCity, UnknownCountry},
		{"", UnknownVenue, UnknownCity, UnknownCountry},
		{" in London, UK", UnknownVenue, "London", "UK"},
	}
	for _, tt := range tests {
		venue, city, country := SplitLocation(tt.in)
		assert.Equal(t, []string{tt.venue, tt.city, tt.country}, []string{venue, city, country}, tt.in)
	}
}
