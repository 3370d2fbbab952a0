package statements

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
)

// Ordering selects how total lines are sequenced.
type Ordering string

const (
	// OrderingPriority uses the fixed balance sheet tiers and template order elsewhere.
	OrderingPriority Ordering = "priority"
	// OrderingTopological derives the order from the references between totals,
	// breaking ties with the priority rule.
	OrderingTopological Ordering = "topological"
)

// ParseOrdering validates an ordering name. Empty means OrderingPriority.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderingPriority:
		return OrderingPriority, nil
	case OrderingTopological:
		return OrderingTopological, nil
	}
	return "", fmt.Errorf("%w: unknown totals ordering %q", apperrors.ErrValidation, s)
}

var (
	sectionTotalCodes = map[string]bool{"100": true, "200": true, "300": true, "400": true}
	grandTotalCodes   = map[string]bool{"270": true, "440": true}
)

// balanceSheetTier ranks a total line: subtotals first, then the four
// section totals, then the two grand totals.
func balanceSheetTier(code string) int {
	code = strings.TrimSpace(code)
	switch {
	case grandTotalCodes[code]:
		return 3
	case sectionTotalCodes[code]:
		return 2
	default:
		return 1
	}
}

// lineCodeKey sorts non-numeric line codes after every numeric one.
func lineCodeKey(v float64, ok bool) float64 {
	if !ok || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// codeKey ranks non-numeric codes below every numeric one.
func codeKey(v float64, ok bool) float64 {
	if !ok || math.IsNaN(v) {
		return math.Inf(-1)
	}
	return v
}

// SortTemplate orders lines by numeric lineCode; non-numeric codes go last
// and keep their relative order.
func SortTemplate(lines []domain.TemplateLine) []domain.TemplateLine {
	out := make([]domain.TemplateLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		return lineCodeKey(out[i].NumericLineCode()) < lineCodeKey(out[j].NumericLineCode())
	})
	return out
}

// tieBreak reports whether total line a should be evaluated before b.
type tieBreak func(a, b int) bool

func templateOrder(a, b int) bool { return a < b }

// balanceSheetOrder: lower tier first, then higher numeric code first.
func balanceSheetOrder(lines []domain.TemplateLine) tieBreak {
	return func(a, b int) bool {
		ta, tb := balanceSheetTier(lines[a].Code), balanceSheetTier(lines[b].Code)
		if ta != tb {
			return ta < tb
		}
		ca := codeKey(lines[a].NumericCode())
		cb := codeKey(lines[b].NumericCode())
		if ca != cb {
			return ca > cb
		}
		return a < b
	}
}

// totalsOrder returns the indices of total lines in evaluation order.
func totalsOrder(lines []domain.TemplateLine, ordering Ordering, less tieBreak) ([]int, error) {
	var totals []int
	for i, l := range lines {
		if l.IsTotalLine {
			totals = append(totals, i)
		}
	}
	if ordering == OrderingTopological {
		return topologicalOrder(lines, totals, less)
	}
	sort.SliceStable(totals, func(i, j int) bool { return less(totals[i], totals[j]) })
	return totals, nil
}

// topologicalOrder runs Kahn's algorithm over the references between total
// lines, always releasing the ready line that less ranks first.
func topologicalOrder(lines []domain.TemplateLine, totals []int, less tieBreak) ([]int, error) {
	byCode := make(map[string][]int)
	for _, i := range totals {
		byCode[strings.TrimSpace(lines[i].Code)] = append(byCode[strings.TrimSpace(lines[i].Code)], i)
	}

	indegree := make(map[int]int, len(totals))
	dependents := make(map[int][]int)
	for _, i := range totals {
		indegree[i] = 0
	}
	for _, i := range totals {
		seen := make(map[int]bool)
		for _, ref := range References(lines[i].CalculationFormula) {
			for _, dep := range byCode[ref] {
				if dep == i || seen[dep] {
					continue
				}
				seen[dep] = true
				dependents[dep] = append(dependents[dep], i)
				indegree[i]++
			}
		}
	}

	var ready []int
	for _, i := range totals {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, len(totals))
	for len(ready) > 0 {
		best := 0
		for k := 1; k < len(ready); k++ {
			if less(ready[k], ready[best]) {
				best = k
			}
		}
		next := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, next)
		for _, d := range dependents[next] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) != len(totals) {
		var stuck []string
		for _, i := range totals {
			if indegree[i] > 0 {
				stuck = append(stuck, lines[i].Code)
			}
		}
		return nil, fmt.Errorf("%w: total lines reference each other in a cycle: %s", apperrors.ErrValidation, strings.Join(stuck, ", "))
	}
	return order, nil
}
