package period

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// months2023Through2024 is 24 months of contiguous history.
func months2023Through2024() []string {
	var out []string
	for _, year := range []int{2023, 2024} {
		for m := 1; m <= 12; m++ {
			out = append(out, fmt.Sprintf("%04d-%02d", year, m))
		}
	}
	return out
}

func noon(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestResolve_Month(t *testing.T) {
	got := Resolve(Spec{Type: TypeMonth, Value: "2024-03"}, months2023Through2024(), noon(2024, 7, 15))
	assert.Equal(t, []string{"2024-03"}, got)

	assert.Nil(t, Resolve(Spec{Type: TypeMonth, Value: "March 2024"}, nil, noon(2024, 7, 15)))
}

func TestResolve_Quarter(t *testing.T) {
	got := Resolve(Spec{Type: TypeQuarter, Value: "2024-Q2"}, months2023Through2024(), noon(2024, 7, 15))
	assert.Equal(t, []string{"2024-04", "2024-05", "2024-06"}, got)
}

func TestResolve_Year(t *testing.T) {
	available := []string{"2023-11", "2023-12", "2024-01", "2024-02"}
	got := Resolve(Spec{Type: TypeYear, Value: "2024"}, available, noon(2024, 7, 15))
	assert.Equal(t, []string{"2024-01", "2024-02"}, got)
}

func TestResolve_YTD(t *testing.T) {
	got := Resolve(Spec{Type: TypeYTD, Value: "2024-YTD-3"}, months2023Through2024(), noon(2024, 7, 15))
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, got)
}

func TestResolve_TTM(t *testing.T) {
	got := Resolve(Spec{Type: TypeTTM, Value: "TTM-2024-06"}, months2023Through2024(), noon(2024, 7, 15))
	require.Len(t, got, 12)
	assert.Equal(t, "2023-07", got[0])
	assert.Equal(t, "2024-06", got[11])
}

func TestResolve_TTM_ShortHistory(t *testing.T) {
	available := []string{"2024-03", "2024-04", "2024-05", "2024-06"}
	got := Resolve(Spec{Type: TypeTTM, Value: "TTM-2024-06"}, available, noon(2024, 7, 15))
	assert.Equal(t, available, got)

	// No history at or before the end month.
	assert.Nil(t, Resolve(Spec{Type: TypeTTM, Value: "TTM-2024-06"}, []string{"2024-09"}, noon(2024, 10, 1)))
}

func TestResolve_ExcludeCurrent(t *testing.T) {
	now := noon(2024, 6, 20)
	got := Resolve(Spec{Type: TypeQuarter, Value: "2024-Q2", ExcludeCurrent: true}, months2023Through2024(), now)
	assert.Equal(t, []string{"2024-04", "2024-05"}, got)

	// Periods not containing the current month are unaffected.
	got = Resolve(Spec{Type: TypeQuarter, Value: "2024-Q1", ExcludeCurrent: true}, months2023Through2024(), now)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, got)
}

func TestPrior(t *testing.T) {
	for _, tc := range []struct {
		spec Spec
		want string
	}{
		{Spec{Type: TypeMonth, Value: "2024-01"}, "2023-12"},
		{Spec{Type: TypeQuarter, Value: "2024-Q1"}, "2023-Q4"},
		{Spec{Type: TypeQuarter, Value: "2024-Q3"}, "2024-Q2"},
		{Spec{Type: TypeYear, Value: "2024"}, "2023"},
		{Spec{Type: TypeYTD, Value: "2024-YTD-5"}, "2023-YTD-5"},
		{Spec{Type: TypeTTM, Value: "TTM-2024-06"}, "TTM-2023-06"},
	} {
		got, ok := Prior(tc.spec)
		require.True(t, ok, "%v", tc.spec)
		assert.Equal(t, tc.want, got.Value, "%v", tc.spec)
		assert.Equal(t, tc.spec.Type, got.Type)
	}
}

func TestPriorYear(t *testing.T) {
	for _, tc := range []struct {
		spec Spec
		want string
	}{
		{Spec{Type: TypeMonth, Value: "2024-02"}, "2023-02"},
		{Spec{Type: TypeQuarter, Value: "2024-Q1"}, "2023-Q1"},
		{Spec{Type: TypeYear, Value: "2024"}, "2023"},
		{Spec{Type: TypeYTD, Value: "2024-YTD-3"}, "2023-YTD-3"},
		{Spec{Type: TypeTTM, Value: "TTM-2024-06"}, "TTM-2023-06"},
	} {
		got, ok := PriorYear(tc.spec)
		require.True(t, ok, "%v", tc.spec)
		assert.Equal(t, tc.want, got.Value, "%v", tc.spec)
	}
}

func TestResolvePrior_OutsideHistory(t *testing.T) {
	available := []string{"2024-01", "2024-02", "2024-03"}
	got := ResolvePrior(Spec{Type: TypeMonth, Value: "2024-01"}, false, available, noon(2024, 7, 15))
	assert.Nil(t, got, "prior month predates history")

	got = ResolvePrior(Spec{Type: TypeMonth, Value: "2024-03"}, false, available, noon(2024, 7, 15))
	assert.Equal(t, []string{"2024-02"}, got)
}

func TestAddMonths(t *testing.T) {
	got, err := AddMonths("2024-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2023-12", got)

	got, err = AddMonths("2024-11", 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", got)
}
