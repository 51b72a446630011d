package engine

import "salarydash/internal/models"

// NoDataTitle is reported as the most frequent title of an empty view.
const NoDataTitle = "no data available"

// ComputeMetrics returns mean/max salary, row count and the most frequent
// title of v. An empty view yields zeros and NoDataTitle.
func ComputeMetrics(v *View) models.SummaryMetrics {
	n := v.Len()
	if n == 0 {
		return models.SummaryMetrics{TopTitle: NoDataTitle}
	}
	cs := v.store

	var sum float64
	maxSalary := cs.Salaries[v.rows[0]]

	// Title frequencies; order keeps first occurrence for the tie-break.
	counts := make([]int, len(cs.TitleDict))
	order := make([]int32, 0)
	for _, row := range v.rows {
		salary := cs.Salaries[row]
		sum += salary
		if salary > maxSalary {
			maxSalary = salary
		}

		tid := cs.TitleIDs[row]
		if counts[tid] == 0 {
			order = append(order, tid)
		}
		counts[tid]++
	}

	top := order[0]
	for _, tid := range order[1:] {
		if counts[tid] > counts[top] {
			top = tid
		}
	}

	return models.SummaryMetrics{
		MeanSalary: sum / float64(n),
		MaxSalary:  maxSalary,
		Records:    n,
		TopTitle:   cs.TitleDict[top],
	}
}
