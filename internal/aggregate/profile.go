package aggregate

import (
	"math"
	"sort"

	"github.com/albapepper/ringside-data/internal/provider"
)

// WinRate returns wins as an integer percentage of total, 0 when total is 0.
func WinRate(wins, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}

// Summarize computes count-only profiles for every wrestler in matches in a
// single pass without copying any Match. Profile.Matches stays nil; use
// Materialize for the full match list. Profiles are ordered by TotalMatches
// descending, then by name.
func Summarize(matches []provider.Match) []provider.WrestlerProfile {
	type acc struct {
		p       provider.WrestlerProfile
		minutes float64
		timed   int
	}
	byName := make(map[string]*acc)
	var order []string
	for _, m := range matches {
		a, ok := byName[m.Wrestler]
		if !ok {
			a = &acc{p: provider.WrestlerProfile{Name: m.Wrestler}}
			byName[m.Wrestler] = a
			order = append(order, m.Wrestler)
		}
		p := &a.p
		if p.TotalMatches == 0 || m.ParsedDate.Before(p.CareerStart) {
			p.CareerStart = m.ParsedDate
		}
		// >= so that among equal dates the later source row wins, matching
		// the stable sort used by Materialize.
		if p.TotalMatches == 0 || !m.ParsedDate.Before(p.LastMatch) {
			p.LastMatch = m.ParsedDate
			p.Promotion = m.Promotion
		}
		p.TotalMatches++
		switch m.Result {
		case provider.ResultWin:
			p.Wins++
		case provider.ResultLoss:
			p.Losses++
		case provider.ResultDraw:
			p.Draws++
		}
		if m.PPV {
			p.PPVMatches++
		}
		if mm := provider.MatchMinutes(m.MatchTime); mm > 0 {
			a.minutes += mm
			a.timed++
		}
	}

	profiles := make([]provider.WrestlerProfile, 0, len(order))
	for _, name := range order {
		a := byName[name]
		a.p.WinRate = WinRate(a.p.Wins, a.p.TotalMatches)
		a.p.CareerEnd = a.p.LastMatch
		a.p.AvgMatchMinutes = avgMinutes(a.minutes, a.timed)
		profiles = append(profiles, a.p)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].TotalMatches != profiles[j].TotalMatches {
			return profiles[i].TotalMatches > profiles[j].TotalMatches
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Materialize builds the full profile for name from matches, including an
// owned copy of that wrestler's matches sorted by ParsedDate ascending.
// Matches of other wrestlers are ignored.
func Materialize(name string, matches []provider.Match) provider.WrestlerProfile {
	var own []provider.Match
	for _, m := range matches {
		if m.Wrestler == name {
			own = append(own, m)
		}
	}
	return buildProfile(name, own)
}

// buildProfile assumes every element of own belongs to name.
func buildProfile(name string, own []provider.Match) provider.WrestlerProfile {
	p := provider.WrestlerProfile{
		Name:      name,
		Promotion: provider.PromotionIndependent,
		Matches:   make([]provider.Match, len(own)),
	}
	copy(p.Matches, own)
	if len(own) == 0 {
		return p
	}

	// Stable so equal dates keep source order and the last source row wins.
	sort.SliceStable(p.Matches, func(i, j int) bool {
		return p.Matches[i].ParsedDate.Before(p.Matches[j].ParsedDate)
	})

	var minutes float64
	var timed int
	for _, m := range p.Matches {
		p.TotalMatches++
		switch m.Result {
		case provider.ResultWin:
			p.Wins++
		case provider.ResultLoss:
			p.Losses++
		case provider.ResultDraw:
			p.Draws++
		}
		if m.PPV {
			p.PPVMatches++
		}
		if mm := provider.MatchMinutes(m.MatchTime); mm > 0 {
			minutes += mm
			timed++
		}
	}

	first, last := p.Matches[0], p.Matches[len(p.Matches)-1]
	p.WinRate = WinRate(p.Wins, p.TotalMatches)
	p.LastMatch = last.ParsedDate
	p.CareerStart = first.ParsedDate
	p.CareerEnd = last.ParsedDate
	p.Promotion = last.Promotion
	p.AvgMatchMinutes = avgMinutes(minutes, timed)
	return p
}

// avgMinutes rounds to two decimals so summary and materialized profiles agree.
func avgMinutes(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(total/float64(n)*100) / 100
}
