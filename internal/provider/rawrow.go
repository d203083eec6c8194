package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RawRow is the typed shape of one source line after header mapping.
// Every downstream consumer works from this struct, never from the header map.
type RawRow struct {
	Date      string `validate:"max=64"`
	Result    string `validate:"required_without=Event,max=2048"`
	Event     string `validate:"required_without=Result,max=2048"`
	Location  string `validate:"max=512"`
	MatchTime string `validate:"max=32"`
	ImageURL  string `validate:"max=2048"`
}

// headerAliases maps accepted header names onto RawRow fields.
var headerAliases = map[string]string{
	"date":        "date",
	"match_date":  "date",
	"result":      "result",
	"description": "result",
	"match":       "result",
	"event":       "event",
	"show":        "event",
	"card":        "event",
	"location":    "location",
	"venue":       "location",
	"match_time":  "match_time",
	"matchtime":   "match_time",
	"time":        "match_time",
	"duration":    "match_time",
	"image_url":   "image_url",
	"image":       "image_url",
	"img":         "image_url",
}

// ErrInvalidRow is returned by DecodeRow when a row fails schema validation.
var ErrInvalidRow = errors.New("invalid row")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance. The validator caches
// struct metadata, so one instance serves the whole process.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// CanonicalHeader returns the RawRow column an arbitrary header maps to, or
// "" for columns the pipeline ignores (the scraper's leading index column).
func CanonicalHeader(name string) string {
	return headerAliases[strings.ToLower(strings.TrimSpace(name))]
}

// DecodeRow maps an untyped header→value record into a RawRow and validates
// it. Unknown columns are dropped. When several headers alias the same
// column, the canonical spelling wins, then the alphabetically first alias.
func DecodeRow(fields map[string]string) (RawRow, error) {
	headers := make([]string, 0, len(fields))
	for h := range fields {
		headers = append(headers, h)
	}
	sort.Slice(headers, func(i, j int) bool {
		ri, rj := aliasRank(headers[i]), aliasRank(headers[j])
		if ri != rj {
			return ri < rj
		}
		return headers[i] < headers[j]
	})

	var row RawRow
	for _, header := range headers {
		value := strings.TrimSpace(fields[header])
		if value == "" {
			continue
		}
		var dst *string
		switch CanonicalHeader(header) {
		case "date":
			dst = &row.Date
		case "result":
			dst = &row.Result
		case "event":
			dst = &row.Event
		case "location":
			dst = &row.Location
		case "match_time":
			dst = &row.MatchTime
		case "image_url":
			dst = &row.ImageURL
		default:
			continue
		}
		if *dst == "" {
			*dst = value
		}
	}

	if err := Validator().Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return RawRow{}, fmt.Errorf("%w: %s failed %q", ErrInvalidRow, verrs[0].Field(), verrs[0].Tag())
		}
		return RawRow{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	return row, nil
}

// aliasRank puts canonical header spellings ahead of their aliases.
func aliasRank(header string) int {
	h := strings.ToLower(strings.TrimSpace(header))
	if CanonicalHeader(h) == h {
		return 0
	}
	return 1
}
