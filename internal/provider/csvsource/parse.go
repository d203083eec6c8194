package csvsource

import (
	"bufio"
	"bytes"
	"strings"
)

// RawRecord is one data line keyed by lower-cased header name.
type RawRecord map[string]string

// ParseStats counts what Parse kept and dropped.
type ParseStats struct {
	Rows    int // data lines seen
	Skipped int // lines dropped for short field counts
}

// Parse splits a CSV blob into header-keyed records in source order.
//
// Input is newline-delimited and every line is split on its own, so a
// malformed line never affects its neighbours. The first non-blank line is
// the header. Double quotes group commas into one value and are always
// stripped; surrounding whitespace is trimmed. A line with fewer fields than
// the header is skipped, extra fields are ignored. Empty or header-only
// input yields no records.
func Parse(data []byte) ([]RawRecord, ParseStats) {
	var stats ParseStats

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64<<10), len(data)+1)

	var header []string
	for header == nil && sc.Scan() {
		fields := splitLine(sc.Text())
		if isBlank(fields) {
			continue
		}
		header = make([]string, len(fields))
		for i, h := range fields {
			header[i] = strings.ToLower(strings.TrimPrefix(h, "\ufeff"))
		}
	}
	if header == nil {
		return nil, stats
	}

	var out []RawRecord
	for sc.Scan() {
		fields := splitLine(sc.Text())
		if isBlank(fields) {
			continue
		}
		stats.Rows++
		if len(fields) < len(header) {
			stats.Skipped++
			continue
		}
		row := make(RawRecord, len(header))
		for i, h := range header {
			row[h] = fields[i]
		}
		out = append(out, row)
	}
	return out, stats
}

// splitLine splits one line on commas outside double quotes. Quote
// characters toggle the quoted state and never reach the output, so an
// unbalanced quote only swallows the rest of its own line.
func splitLine(line string) []string {
	line = strings.TrimSuffix(line, "\r")

	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(field.String()))
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
