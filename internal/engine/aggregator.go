package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"salarydash/internal/models"
)

// Aggregate computes the summary metrics and every chart of v.
// The transforms run concurrently; each writes its own field only and is
// skipped once ctx is done.
func Aggregate(ctx context.Context, v *View) (*models.DashboardData, error) {
	data := &models.DashboardData{}

	g, ctx := errgroup.WithContext(ctx)
	run := func(compute func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			compute()
			return ctx.Err()
		})
	}
	run(func() { data.Summary = ComputeMetrics(v) })
	run(func() { data.TopTitles = TopTitles(v) })
	run(func() { data.SalaryDistribution = SalaryDistribution(v) })
	run(func() { data.RemoteModes = RemoteModes(v) })
	run(func() { data.CountrySalaries = CountrySalaries(v) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
