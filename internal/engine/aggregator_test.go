package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	// 1. Setup Mock Data (ColumnStore)
	// Row 0: 2021, Data Scientist, USA, 100
	// Row 1: 2021, Data Scientist, BRA, 300
	// Row 2: 2022, Analyst,        USA, 200
	store := &ColumnStore{
		Years:    []int32{2021, 2021, 2022},
		Salaries: []float64{100, 300, 200},

		SeniorityIDs: []int32{0, 1, 0},
		ContractIDs:  []int32{0, 0, 0},
		SizeIDs:      []int32{0, 0, 1},
		TitleIDs:     []int32{0, 0, 1},
		RemoteIDs:    []int32{0, 1, 0},
		CountryIDs:   []int32{0, 1, 0},

		SeniorityDict: []string{"senior", "junior"},
		ContractDict:  []string{"integral"},
		SizeDict:      []string{"grande", "media"},
		TitleDict:     []string{"Data Scientist", "Analyst"},
		RemoteDict:    []string{"remoto", "presencial"},
		CountryDict:   []string{"USA", "BRA"},
	}

	// 2. Run Aggregation
	data, err := Aggregate(context.Background(), store.Apply(store.DefaultSelection()))
	require.NoError(t, err)

	// 3. Assertions
	assert.Equal(t, 200.0, data.Summary.MeanSalary)
	assert.Equal(t, 300.0, data.Summary.MaxSalary)
	assert.Equal(t, 3, data.Summary.Records)
	assert.Equal(t, "Data Scientist", data.Summary.TopTitle)

	require.Len(t, data.TopTitles, 2)
	assert.Equal(t, "Data Scientist", data.TopTitles[1].Title)

	assert.Len(t, data.SalaryDistribution, HistogramBins)
	require.Len(t, data.RemoteModes, 2)
	assert.Equal(t, 2, data.RemoteModes[0].Count)

	require.Len(t, data.CountrySalaries, 2)
	assert.Equal(t, "BRA", data.CountrySalaries[0].Country)
	assert.Equal(t, 300.0, data.CountrySalaries[0].MeanSalary)
}

func TestAggregateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := Aggregate(ctx, scenarioStore().All())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, data)
}
