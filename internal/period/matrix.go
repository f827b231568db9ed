package period

import (
	"fmt"
	"time"
)

// Column is one period of a matrix view: a label plus the month keys it
// covers. IsPartial marks the column still accumulating activity (the one
// containing the current calendar month).
type Column struct {
	Label     string   `json:"label"`
	Months    []string `json:"months"`
	IsPartial bool     `json:"isPartial"`
}

// MonthColumns returns twelve single-month columns covering one calendar
// year, clipped to available history. With excludeCurrent set the current
// month is dropped entirely; otherwise its column is marked partial.
func MonthColumns(year int, available []string, now time.Time, excludeCurrent bool) []Column {
	var cols []Column
	for m := time.January; m <= time.December; m++ {
		key := MonthKey(year, m)
		months := clip([]string{key}, available)
		if len(months) == 0 {
			continue
		}
		cols = append(cols, Column{
			Label:  time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Months: months,
		})
	}
	return markCurrent(cols, now, excludeCurrent)
}

// QuarterColumns returns four quarter columns covering one calendar year,
// clipped to available history.
func QuarterColumns(year int, available []string, now time.Time, excludeCurrent bool) []Column {
	var cols []Column
	for q := 1; q <= 4; q++ {
		spec := Spec{Type: TypeQuarter, Value: fmt.Sprintf("%04d-Q%d", year, q)}
		months := clip(Resolve(spec, available, now), available)
		if len(months) == 0 {
			continue
		}
		cols = append(cols, Column{Label: fmt.Sprintf("Q%d %d", q, year), Months: months})
	}
	return markCurrent(cols, now, excludeCurrent)
}

// YearColumns returns one column per year in [from, to], clipped to
// available history.
func YearColumns(from, to int, available []string, now time.Time, excludeCurrent bool) []Column {
	var cols []Column
	for year := from; year <= to; year++ {
		spec := Spec{Type: TypeYear, Value: fmt.Sprintf("%04d", year)}
		months := Resolve(spec, available, now)
		if len(months) == 0 {
			continue
		}
		cols = append(cols, Column{Label: fmt.Sprintf("%d", year), Months: months})
	}
	return markCurrent(cols, now, excludeCurrent)
}

// markCurrent flags the column containing the current calendar month as
// partial, or removes that month when excludeCurrent is set. IsPartial is
// only ever true when excludeCurrent is false.
func markCurrent(cols []Column, now time.Time, excludeCurrent bool) []Column {
	current := MonthKey(now.Year(), now.Month())
	out := cols[:0]
	for _, col := range cols {
		if contains(col.Months, current) {
			if excludeCurrent {
				col.Months = remove(col.Months, current)
			} else {
				col.IsPartial = true
			}
		}
		if len(col.Months) > 0 {
			out = append(out, col)
		}
	}
	return out
}

func clip(months, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, m := range available {
		set[m] = struct{}{}
	}
	var out []string
	for _, m := range months {
		if _, ok := set[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

func contains(months []string, key string) bool {
	for _, m := range months {
		if m == key {
			return true
		}
	}
	return false
}
