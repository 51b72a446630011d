package engine

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/models"
)

func TestTopTitlesLimitAndOrder(t *testing.T) {
	var records []models.Record
	for i := 0; i < 15; i++ {
		title := fmt.Sprintf("Title %02d", i)
		records = append(records, rec(2022, title, float64(1000*(i+1))), rec(2022, title, float64(1000*(i+1)+500)))
	}
	store := FromRecords(records)

	top := TopTitles(store.All())
	require.Len(t, top, TopTitleLimit)
	assert.True(t, sort.SliceIsSorted(top, func(i, j int) bool { return top[i].MeanSalary < top[j].MeanSalary }))

	// Highest mean is Title 14: (15000 + 15500) / 2.
	assert.Equal(t, "Title 14", top[len(top)-1].Title)
	assert.Equal(t, 15250.0, top[len(top)-1].MeanSalary)
	assert.Equal(t, "Title 05", top[0].Title)
}

func TestTopTitlesFewerGroups(t *testing.T) {
	top := TopTitles(scenarioStore().All())

	assert.Equal(t, []models.TitleSalary{
		{Title: "Engineer", MeanSalary: 150},
		{Title: "Analyst", MeanSalary: 350},
		{Title: "Data Scientist", MeanSalary: 500},
	}, top)
}

func TestSalaryDistributionBins(t *testing.T) {
	view := mixedStore().All()

	bins := SalaryDistribution(view)
	require.Len(t, bins, HistogramBins)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, view.Len(), total)

	assert.Equal(t, 50000.0, bins[0].Lower)
	assert.Equal(t, 250000.0, bins[HistogramBins-1].Upper)
	// The maximum falls into the closed last bin.
	assert.Equal(t, 1, bins[HistogramBins-1].Count)
	assert.Equal(t, 1, bins[0].Count)
}

func TestSalaryDistributionRespectsStoredEdges(t *testing.T) {
	// Tenths accumulate rounding error, so values sit on or next to bin edges.
	var records []models.Record
	for i := 0; i <= 90; i++ {
		records = append(records, rec(2022, "A", float64(i)*0.1))
	}
	for i := 0; i < HistogramBins; i++ {
		records = append(records, rec(2022, "B", 9.0*float64(i)/HistogramBins))
	}
	view := FromRecords(records).All()

	bins := salaryHistogram(view, HistogramBins)
	require.Len(t, bins, HistogramBins)

	want := make([]int, HistogramBins)
	for _, r := range view.Records(0, 0) {
		s := r.SalaryUSD
		for i, b := range bins {
			last := i == HistogramBins-1
			if s >= b.Lower && (s < b.Upper || (last && s <= b.Upper)) {
				want[i]++
				break
			}
		}
	}

	got := make([]int, HistogramBins)
	for i, b := range bins {
		got[i] = b.Count
	}
	assert.Equal(t, want, got)
	assert.Equal(t, view.Len(), sumCounts(bins))
}

func sumCounts(bins []models.HistogramBin) int {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	return total
}

func TestSalaryDistributionSingleValue(t *testing.T) {
	store := FromRecords([]models.Record{rec(2022, "A", 100), rec(2022, "B", 100)})

	bins := SalaryDistribution(store.All())
	require.Len(t, bins, HistogramBins)
	assert.Equal(t, 99.5, bins[0].Lower)
	assert.Equal(t, 100.5, bins[HistogramBins-1].Upper)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 2, total)
}

func TestRemoteModesCounts(t *testing.T) {
	modes := RemoteModes(mixedStore().All())

	assert.Equal(t, []models.RemoteModeCount{
		{WorkType: "remoto", Count: 3},
		{WorkType: "hibrido", Count: 2},
		{WorkType: "presencial", Count: 1},
	}, modes)
}

func TestCountrySalariesFeaturedTitle(t *testing.T) {
	got := CountrySalaries(mixedStore().All())

	// The Data Scientist without a country is left out.
	assert.Equal(t, []models.CountrySalary{
		{Country: "BRA", MeanSalary: 50000},
		{Country: "USA", MeanSalary: 130000},
	}, got)
}

func TestCountrySalariesWithoutFeaturedTitle(t *testing.T) {
	store := FromRecords([]models.Record{rec(2021, "Engineer", 1), rec(2021, "Analyst", 2)})

	assert.Empty(t, CountrySalaries(store.All()))
	assert.NotNil(t, CountrySalaries(store.All()))
}

func TestChartsOnEmptyView(t *testing.T) {
	view := mixedStore().Apply(Selection{})

	assert.Equal(t, []models.TitleSalary{}, TopTitles(view))
	assert.Equal(t, []models.HistogramBin{}, SalaryDistribution(view))
	assert.Equal(t, []models.RemoteModeCount{}, RemoteModes(view))
	assert.Equal(t, []models.CountrySalary{}, CountrySalaries(view))
}
