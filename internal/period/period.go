// Package period converts a period selection (month, quarter, year, YTD,
// TTM) into the ordered list of ledger month keys it covers, and computes
// the matching prior-period and prior-year selections for comparisons.
package period

import (
	"fmt"
	"time"
)

// Type is a period selection kind.
type Type string

const (
	TypeMonth   Type = "month"
	TypeQuarter Type = "quarter"
	TypeYear    Type = "year"
	TypeYTD     Type = "ytd"
	TypeTTM     Type = "ttm"
)

// Spec is one period selection. Value formats by type:
//
//	month    "YYYY-MM"
//	quarter  "YYYY-Qn"
//	year     "YYYY"
//	ytd      "YYYY-YTD-M"   (months 1..M of YYYY)
//	ttm      "TTM-YYYY-MM"  (trailing 12 months ending at YYYY-MM)
//
// A Spec is never mutated after resolution.
type Spec struct {
	Type           Type
	Value          string
	ExcludeCurrent bool
}

// MonthKey formats a year/month pair as a "YYYY-MM" ledger key.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthKey splits a "YYYY-MM" key into year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	var y, m int
	if _, err := fmt.Sscanf(key, "%4d-%2d", &y, &m); err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	return y, time.Month(m), nil
}

// AddMonths shifts a month key by n calendar months (n may be negative).
func AddMonths(key string, n int) (string, error) {
	y, m, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	t := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthKey(t.Year(), t.Month()), nil
}

// Resolve converts a spec into ordered month keys, oldest first, clipped to
// available history where the period type calls for it. An unknown or
// unparsable spec, or one with no overlap with history, resolves to nil
// rather than a guess.
func Resolve(spec Spec, available []string, now time.Time) []string {
	var months []string
	switch spec.Type {
	case TypeMonth:
		if _, _, err := ParseMonthKey(spec.Value); err != nil {
			return nil
		}
		months = []string{spec.Value}

	case TypeQuarter:
		year, q, err := parseQuarter(spec.Value)
		if err != nil {
			return nil
		}
		first := (q-1)*3 + 1
		for i := 0; i < 3; i++ {
			months = append(months, MonthKey(year, time.Month(first+i)))
		}

	case TypeYear:
		var year int
		if _, err := fmt.Sscanf(spec.Value, "%4d", &year); err != nil {
			return nil
		}
		prefix := fmt.Sprintf("%04d-", year)
		for _, m := range available {
			if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
				months = append(months, m)
			}
		}

	case TypeYTD:
		var year, through int
		if _, err := fmt.Sscanf(spec.Value, "%4d-YTD-%d", &year, &through); err != nil || through < 1 || through > 12 {
			return nil
		}
		for m := 1; m <= through; m++ {
			months = append(months, MonthKey(year, time.Month(m)))
		}

	case TypeTTM:
		end, ok := parseTTM(spec.Value)
		if !ok {
			return nil
		}
		// Count of available months at or before the end month; the window
		// is the last 12 of those, fewer when history is short.
		pos := 0
		for pos < len(available) && available[pos] <= end {
			pos++
		}
		if pos == 0 {
			return nil
		}
		start := pos - 12
		if start < 0 {
			start = 0
		}
		months = append(months, available[start:pos]...)

	default:
		return nil
	}

	if spec.ExcludeCurrent {
		months = remove(months, MonthKey(now.Year(), now.Month()))
	}
	return months
}

// Prior returns the same-type spec one unit back: the previous month,
// quarter (Q1 wraps to Q4 of the prior year), or year. YTD and TTM windows
// are anchored to the year, so their prior period is the same window one
// year earlier. Returns false when the value cannot be parsed.
func Prior(spec Spec) (Spec, bool) {
	switch spec.Type {
	case TypeMonth:
		prev, err := AddMonths(spec.Value, -1)
		if err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeMonth, Value: prev}, true

	case TypeQuarter:
		year, q, err := parseQuarter(spec.Value)
		if err != nil {
			return Spec{}, false
		}
		if q == 1 {
			year, q = year-1, 4
		} else {
			q--
		}
		return Spec{Type: TypeQuarter, Value: fmt.Sprintf("%04d-Q%d", year, q)}, true

	case TypeYear, TypeYTD, TypeTTM:
		return PriorYear(spec)
	}
	return Spec{}, false
}

// PriorYear returns the same sub-period one calendar year earlier.
func PriorYear(spec Spec) (Spec, bool) {
	switch spec.Type {
	case TypeMonth:
		y, m, err := ParseMonthKey(spec.Value)
		if err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeMonth, Value: MonthKey(y-1, m)}, true

	case TypeQuarter:
		year, q, err := parseQuarter(spec.Value)
		if err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeQuarter, Value: fmt.Sprintf("%04d-Q%d", year-1, q)}, true

	case TypeYear:
		var year int
		if _, err := fmt.Sscanf(spec.Value, "%4d", &year); err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeYear, Value: fmt.Sprintf("%04d", year-1)}, true

	case TypeYTD:
		var year, through int
		if _, err := fmt.Sscanf(spec.Value, "%4d-YTD-%d", &year, &through); err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeYTD, Value: fmt.Sprintf("%04d-YTD-%d", year-1, through)}, true

	case TypeTTM:
		end, ok := parseTTM(spec.Value)
		if !ok {
			return Spec{}, false
		}
		prev, err := AddMonths(end, -12)
		if err != nil {
			return Spec{}, false
		}
		return Spec{Type: TypeTTM, Value: "TTM-" + prev}, true
	}
	return Spec{}, false
}

// ResolvePrior resolves the prior-period or prior-year counterpart of spec.
// A prior period outside available history yields nil: the comparison is
// reported as unavailable, never fabricated.
func ResolvePrior(spec Spec, priorYear bool, available []string, now time.Time) []string {
	var prior Spec
	var ok bool
	if priorYear {
		prior, ok = PriorYear(spec)
	} else {
		prior, ok = Prior(spec)
	}
	if !ok {
		return nil
	}
	prior.ExcludeCurrent = spec.ExcludeCurrent

	months := Resolve(prior, available, now)
	if !overlaps(months, available) {
		return nil
	}
	return months
}

func parseQuarter(value string) (year, q int, err error) {
	if _, err := fmt.Sscanf(value, "%4d-Q%1d", &year, &q); err != nil || q < 1 || q > 4 {
		return 0, 0, fmt.Errorf("invalid quarter %q", value)
	}
	return year, q, nil
}

func parseTTM(value string) (end string, ok bool) {
	var y, m int
	if _, err := fmt.Sscanf(value, "TTM-%4d-%2d", &y, &m); err != nil || m < 1 || m > 12 {
		return "", false
	}
	return MonthKey(y, time.Month(m)), true
}

func remove(months []string, key string) []string {
	out := months[:0]
	for _, m := range months {
		if m != key {
			out = append(out, m)
		}
	}
	return out
}

func overlaps(months, available []string) bool {
	set := make(map[string]struct{}, len(available))
	for _, m := range available {
		set[m] = struct{}{}
	}
	for _, m := range months {
		if _, ok := set[m]; ok {
			return true
		}
	}
	return false
}
