package grid

import (
	"math"
	"strconv"
	"strings"
)

// Summarize computes selection statistics over a flat cell list. CellCount
// counts every cell; RowCount counts distinct rows; the numeric aggregates
// cover only values that parse as finite floats and are nil when there are
// none.
func Summarize(cells []SelectedCell) SelectionInfo {
	info := SelectionInfo{CellCount: len(cells)}

	rows := make(map[string]struct{}, len(cells))
	var sum, min, max float64
	for _, c := range cells {
		rows[c.Cell.RowID] = struct{}{}
		n, ok := numericValue(c.Value)
		if !ok {
			continue
		}
		if info.NumericCount == 0 {
			min, max = n, n
		} else {
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		sum += n
		info.NumericCount++
	}
	info.RowCount = len(rows)

	if info.NumericCount > 0 {
		avg := sum / float64(info.NumericCount)
		info.Sum = &sum
		info.Average = &avg
		info.Min = &min
		info.Max = &max
	}
	return info
}

func numericValue(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(ValueString(v)), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
