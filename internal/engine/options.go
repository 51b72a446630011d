package engine

import (
	"slices"

	"salarydash/internal/models"
)

// Options lists the sorted distinct values of every filter dimension.
// It always reflects the full dataset, never a filtered view.
func (cs *ColumnStore) Options() models.FilterOptions {
	seen := make(map[int32]struct{})
	years := make([]int, 0)
	for _, y := range cs.Years {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, int(y))
		}
	}
	slices.Sort(years)

	return models.FilterOptions{
		Years:        years,
		Seniorities:  usedValues(cs.SeniorityDict, cs.SeniorityIDs),
		Contracts:    usedValues(cs.ContractDict, cs.ContractIDs),
		CompanySizes: usedValues(cs.SizeDict, cs.SizeIDs),
	}
}

// usedValues returns the dictionary entries referenced by ids, sorted.
func usedValues(dict []string, ids []int32) []string {
	used := make([]bool, len(dict))
	for _, id := range ids {
		used[id] = true
	}
	out := make([]string, 0, len(dict))
	for id, ok := range used {
		if ok {
			out = append(out, dict[id])
		}
	}
	slices.Sort(out)
	return out
}
