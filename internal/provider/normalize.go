package provider

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Normalizer turns RawRow values into Match values. The only outside input
// is the clock, used as the parsed date of rows whose date cannot be read.
// A Normalizer is safe for concurrent use and must not be copied.
type Normalizer struct {
	Now func() time.Time

	opponents sync.Map // wrestler → *regexp.Regexp
}

// NewNormalizer returns a Normalizer on the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize builds the canonical Match for row, owned by wrestler.
// It never fails: malformed input degrades to the documented fallbacks.
func (n *Normalizer) Normalize(row RawRow, wrestler string) Match {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}

	text := BoutText(row)
	parsed, ok := ParseDate(row.Date, now())

	m := Match{
		Date:       row.Date,
		ParsedDate: parsed,
		DateParsed: ok,
		Year:       parsed.Year(),
		Wrestler:   wrestler,
		Opponent:   matchOpponent(n.opponentRe(wrestler), text),
		Result:     ClassifyResult(text, wrestler),
		Event:      firstNonEmpty(row.Event, row.Result),
		Promotion:  ClassifyPromotion(text),
		Location:   row.Location,
		MatchTime:  row.MatchTime,
		PPV:        IsPPV(text),
		ImageURL:   row.ImageURL,
	}
	if m.Location == "" {
		m.Location = ExtractVenue(text)
	}
	if m.MatchTime == "" {
		m.MatchTime = ExtractMatchTime(text)
	}
	return m
}

// BoutText is the text searched for outcome, opponent and promotion: the
// event column followed by the result/description column.
func BoutText(row RawRow) string {
	switch {
	case row.Event == "":
		return row.Result
	case row.Result == "":
		return row.Event
	default:
		return row.Event + " " + row.Result
	}
}

// ParseDate reads a day.month.year date. ok is false when s does not consist
// of exactly three all-digit parts; the returned time is then fallback.
// Out-of-range days and months roll over the way time.Date does.
func ParseDate(s string, fallback time.Time) (t time.Time, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return fallback, false
	}
	var nums [3]int
	for i, p := range parts {
		if p == "" || !allDigits(p) {
			return fallback, false
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return fallback, false
		}
		nums[i] = v
	}
	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ClassifyResult decides the outcome for wrestler from "X defeats Y" phrasing.
// "<wrestler> defeats" is a win, "defeats <wrestler>" a loss, anything else
// unknown. Matching is case-insensitive.
func ClassifyResult(text, wrestler string) Result {
	w := strings.ToLower(collapseSpace(wrestler))
	if w == "" {
		return ResultUnknown
	}
	t := strings.ToLower(collapseSpace(text))
	switch {
	case strings.Contains(t, w+" defeats "):
		return ResultWin
	case strings.Contains(t, "defeats "+w):
		return ResultLoss
	default:
		return ResultUnknown
	}
}

// promotionKeywords is checked in order; the first hit wins.
var promotionKeywords = []struct {
	promotion Promotion
	keywords  []string
}{
	{PromotionWWE, []string{"wwe"}},
	{PromotionAEW, []string{"aew"}},
	{PromotionNJPW, []string{"njpw"}},
	{PromotionTNA, []string{"tna", "impact"}},
}

// ClassifyPromotion tags text with the first promotion keyword it contains.
func ClassifyPromotion(text string) Promotion {
	t := strings.ToLower(text)
	for _, pk := range promotionKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(t, kw) {
				return pk.promotion
			}
		}
	}
	return PromotionIndependent
}

// ExtractOpponent pulls the first name token on the other side of "defeats".
func ExtractOpponent(text, wrestler string) string {
	return matchOpponent(opponentPattern(wrestler), text)
}

// opponentRe returns the cached opponent pattern for wrestler.
func (n *Normalizer) opponentRe(wrestler string) *regexp.Regexp {
	if n == nil {
		return opponentPattern(wrestler)
	}
	if re, ok := n.opponents.Load(wrestler); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := n.opponents.LoadOrStore(wrestler, opponentPattern(wrestler))
	return re.(*regexp.Regexp)
}

// opponentPattern compiles the "<w> defeats X | X defeats <w>" pattern, or
// returns nil for a blank wrestler.
func opponentPattern(wrestler string) *regexp.Regexp {
	w := strings.TrimSpace(wrestler)
	if w == "" {
		return nil
	}
	name := strings.Join(strings.Fields(regexp.QuoteMeta(w)), `\s+`)
	return regexp.MustCompile(`(?i)` + name + `\s+defeats\s+([^\s()]+)|([^\s()]+)\s+defeats\s+` + name)
}

func matchOpponent(re *regexp.Regexp, text string) string {
	if re == nil {
		return UnknownOpponent
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return UnknownOpponent
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return UnknownOpponent
}

var matchTimeRe = regexp.MustCompile(`\((\d{1,2}:\d{2})\)`)

// ExtractMatchTime finds a "(mm:ss)" duration in text, or DefaultMatchTime.
func ExtractMatchTime(text string) string {
	if m := matchTimeRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return DefaultMatchTime
}

// ExtractVenue returns whatever follows the last "@" in text, trimmed.
func ExtractVenue(text string) string {
	i := strings.LastIndex(text, "@")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i+1:])
}

// MatchMinutes converts an "mm:ss" duration into minutes; malformed input is 0.
func MatchMinutes(matchTime string) float64 {
	parts := strings.Split(matchTime, ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err1 := strconv.Atoi(parts[0])
	secs, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || mins < 0 || secs < 0 {
		return 0
	}
	return float64(mins) + float64(secs)/60
}

var ppvMarkers = []string{
	"Premium Live Event", "Pay-Per-View", "PPV",
	"WrestleMania", "SummerSlam", "Royal Rumble", "Survivor Series",
	"Money In The Bank", "Hell In A Cell", "Elimination Chamber",
	"Forbidden Door", "All Out", "Revolution", "Double or Nothing",
}

// IsPPV reports whether text names a pay-per-view or marquee event.
func IsPPV(text string) bool {
	for _, marker := range ppvMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// WrestlerName converts a source identity such as "CM_Punk" into the
// canonical display name "CM Punk".
func WrestlerName(identity string) string {
	return strings.TrimSpace(strings.ReplaceAll(identity, "_", " "))
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
