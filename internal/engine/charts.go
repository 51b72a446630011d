package engine

import (
	"slices"
	"sort"

	"salarydash/internal/models"
)

const (
	// TopTitleLimit is the number of titles in the top-salary chart.
	TopTitleLimit = 10
	// HistogramBins is the number of equal-width salary bins.
	HistogramBins = 30
	// FeaturedTitle is the title whose salaries are broken down by country.
	FeaturedTitle = "Data Scientist"
)

type salaryAcc struct {
	sum   float64
	count int
}

func (a salaryAcc) mean() float64 {
	return a.sum / float64(a.count)
}

// TopTitles returns the TopTitleLimit titles with the highest mean salary,
// ordered ascending by mean so the largest bar ends up on top.
func TopTitles(v *View) []models.TitleSalary {
	return topTitles(v, TopTitleLimit)
}

func topTitles(v *View, limit int) []models.TitleSalary {
	out := make([]models.TitleSalary, 0)
	if v.Len() == 0 {
		return out
	}
	cs := v.store

	accs := make([]salaryAcc, len(cs.TitleDict))
	for _, row := range v.rows {
		a := &accs[cs.TitleIDs[row]]
		a.sum += cs.Salaries[row]
		a.count++
	}
	for id, a := range accs {
		if a.count > 0 {
			out = append(out, models.TitleSalary{Title: cs.TitleDict[id], MeanSalary: a.mean()})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanSalary != out[j].MeanSalary {
			return out[i].MeanSalary > out[j].MeanSalary
		}
		return out[i].Title < out[j].Title
	})
	if len(out) > limit {
		out = out[:limit]
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanSalary != out[j].MeanSalary {
			return out[i].MeanSalary < out[j].MeanSalary
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// SalaryDistribution splits the salaries of v into HistogramBins equal-width
// bins spanning [min, max].
func SalaryDistribution(v *View) []models.HistogramBin {
	return salaryHistogram(v, HistogramBins)
}

func salaryHistogram(v *View, bins int) []models.HistogramBin {
	if v.Len() == 0 || bins <= 0 {
		return make([]models.HistogramBin, 0)
	}
	cs := v.store

	lo, hi := cs.Salaries[v.rows[0]], cs.Salaries[v.rows[0]]
	for _, row := range v.rows {
		s := cs.Salaries[row]
		lo = min(lo, s)
		hi = max(hi, s)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	// Bins are [Lower, Upper) except the last, which is closed. The division
	// only estimates the bin; the stored edges decide.
	for _, row := range v.rows {
		s := cs.Salaries[row]
		idx := min(max(int((s-lo)/width), 0), bins-1)
		for idx > 0 && s < out[idx].Lower {
			idx--
		}
		for idx < bins-1 && s >= out[idx].Upper {
			idx++
		}
		out[idx].Count++
	}
	return out
}

// RemoteModes counts rows per remote-work mode, most frequent first.
func RemoteModes(v *View) []models.RemoteModeCount {
	out := make([]models.RemoteModeCount, 0)
	if v.Len() == 0 {
		return out
	}
	cs := v.store

	counts := make([]int, len(cs.RemoteDict))
	order := make([]int32, 0)
	for _, row := range v.rows {
		id := cs.RemoteIDs[row]
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	for _, id := range order {
		out = append(out, models.RemoteModeCount{WorkType: cs.RemoteDict[id], Count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CountrySalaries returns the mean salary per residence country of the
// FeaturedTitle rows in v. Rows without a country are left out.
func CountrySalaries(v *View) []models.CountrySalary {
	return countrySalaries(v, FeaturedTitle)
}

func countrySalaries(v *View, title string) []models.CountrySalary {
	out := make([]models.CountrySalary, 0)
	if v.Len() == 0 {
		return out
	}
	cs := v.store

	tid := int32(slices.Index(cs.TitleDict, title))
	if tid < 0 {
		return out
	}

	accs := make([]salaryAcc, len(cs.CountryDict))
	for _, row := range v.rows {
		if cs.TitleIDs[row] != tid {
			continue
		}
		cid := cs.CountryIDs[row]
		if cid == NoCountry {
			continue
		}
		accs[cid].sum += cs.Salaries[row]
		accs[cid].count++
	}
	for id, a := range accs {
		if a.count > 0 {
			out = append(out, models.CountrySalary{Country: cs.CountryDict[id], MeanSalary: a.mean()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}
