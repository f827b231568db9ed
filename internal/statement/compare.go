package statement

import (
	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// VarianceRow pairs one current row with its comparison-period counterpart.
// Compare, Diff, and Pct are nil when the comparison period is unavailable;
// PctUnavailable marks a nonzero current against a zero comparison, where a
// percentage is undefined rather than infinite.
type VarianceRow struct {
	model.Row
	Compare        *decimal.Decimal `json:"compare"`
	Diff           *decimal.Decimal `json:"diff"`
	Pct            *decimal.Decimal `json:"pct"`
	PctUnavailable bool             `json:"pctUnavailable,omitempty"`
	Favorable      bool             `json:"favorable"`
}

var hundred = decimal.NewFromInt(100)

// Compare aligns two row lists built from the same group tree and computes
// per-row dollar and percent variance. Pass a nil comparison list when the
// resolver could not produce a comparison period; variance is then reported
// as unavailable rather than fabricated as zero.
func Compare(current, comparison []model.Row) []VarianceRow {
	out := make([]VarianceRow, 0, len(current))
	for i, row := range current {
		vr := VarianceRow{Row: row}

		structural := row.Value == nil
		if !structural && i < len(comparison) && comparison[i].Value != nil {
			cmp := *comparison[i].Value
			diff := row.Value.Sub(cmp)
			vr.Compare = &cmp
			vr.Diff = &diff
			vr.Favorable = favorable(row.IsIncome, diff)

			switch {
			case !cmp.IsZero():
				pct := diff.DivRound(cmp.Abs(), 8).Mul(hundred)
				vr.Pct = &pct
			case !row.Value.IsZero():
				vr.PctUnavailable = true
			default:
				zero := decimal.Zero
				vr.Pct = &zero
			}
		}
		out = append(out, vr)
	}
	return out
}

// favorable classifies a variance for presentation: more income is good,
// more of anything else is not.
func favorable(isIncome bool, diff decimal.Decimal) bool {
	if isIncome {
		return diff.GreaterThanOrEqual(decimal.Zero)
	}
	return diff.LessThanOrEqual(decimal.Zero)
}
