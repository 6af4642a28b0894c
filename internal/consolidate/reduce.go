// Package consolidate merges analysis result sets, either by the fixed
// (Period, Track) key with revenue summing, or through a general plan of
// key columns and per-column reducers.
//
// Known limitation: merged rows are assumed to share one currency label.
// No conversion or mismatch detection is performed; a merged row keeps the
// currency of the last row folded into it.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/whalesrecords/royalty/internal/model"
)

// ReducerKind names the operation applied to a non-key column when rows
// with equal keys collapse.
type ReducerKind string

const (
	ReduceUnion ReducerKind = "union" // distinct values, first-seen order
	ReduceJoin  ReducerKind = "join"  // all values joined with "; "
	ReduceSum   ReducerKind = "sum"   // numeric sum, currency suffix kept
)

// ParseReducer converts a user-supplied reducer name.
func ParseReducer(s string) (ReducerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "union":
		return ReduceUnion, nil
	case "join":
		return ReduceJoin, nil
	case "sum", "total":
		return ReduceSum, nil
	}
	return "", fmt.Errorf("unknown reducer %q (want union, join or total)", s)
}

// reduce folds a sequence of cell values under one reducer.
func reduce(kind ReducerKind, values []string) string {
	switch kind {
	case ReduceUnion:
		seen := make(map[string]bool)
		var distinct []string
		for _, v := range values {
			if seen[v] {
				continue
			}
			seen[v] = true
			distinct = append(distinct, v)
		}
		return strings.Join(distinct, ", ")
	case ReduceJoin:
		return strings.Join(values, "; ")
	case ReduceSum:
		total := decimal.Zero
		currency := ""
		for _, v := range values {
			amount, cur, err := model.ParseAmount(v)
			if err != nil {
				continue
			}
			total = total.Add(amount)
			if cur != "" {
				currency = cur
			}
		}
		if currency != "" {
			return model.FormatAmount(total, currency)
		}
		return total.StringFixed(2)
	}
	return ""
}

// Plan configures a general consolidation: rows grouping by the key
// columns, every other column reduced per Ops. Columns with no configured
// reducer keep their first value.
type Plan struct {
	Keys []string
	Ops  map[string]ReducerKind
}

// Apply consolidates generic rows under a plan. Output rows are sorted by
// the key tuple.
func Apply(rows []map[string]string, plan Plan) []map[string]string {
	type bucket struct {
		key    []string
		values map[string][]string
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, row := range rows {
		key := make([]string, len(plan.Keys))
		for i, col := range plan.Keys {
			key[i] = row[col]
		}
		id := strings.Join(key, "\x00")
		b, ok := buckets[id]
		if !ok {
			b = &bucket{key: key, values: make(map[string][]string)}
			buckets[id] = b
			order = append(order, id)
		}
		for col, v := range row {
			b.values[col] = append(b.values[col], v)
		}
	}

	sort.Strings(order)
	out := make([]map[string]string, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		row := make(map[string]string, len(b.values))
		for i, col := range plan.Keys {
			row[col] = b.key[i]
		}
		for col, values := range b.values {
			if _, isKey := row[col]; isKey && containsColumn(plan.Keys, col) {
				continue
			}
			if kind, ok := plan.Ops[col]; ok {
				row[col] = reduce(kind, values)
			} else {
				row[col] = values[0]
			}
		}
		out = append(out, row)
	}
	return out
}

func containsColumn(cols []string, col string) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
