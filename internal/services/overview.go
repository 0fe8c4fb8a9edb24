package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
)

type fcraSummarizer interface {
	Summary(ctx context.Context) dto.FcraSummary
}

type applicationLister interface {
	List(ctx context.Context) dto.ApplicationList
}

type overviewService struct {
	fcra         fcraSummarizer
	applications applicationLister
}

func NewOverviewService(fcra fcraSummarizer, applications applicationLister) *overviewService {
	return &overviewService{fcra: fcra, applications: applications}
}

// Overview loads the FCRA summary and the application counters concurrently.
func (s *overviewService) Overview(ctx context.Context) (dto.Overview, error) {
	var (
		summary dto.FcraSummary
		apps    dto.ApplicationList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary = s.fcra.Summary(gctx)
		return nil
	})
	g.Go(func() error {
		apps = s.applications.List(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.Overview{}, err
	}

	return dto.Overview{
		Fcra:         summary,
		Applications: SummarizeApplications(apps.Applications),
		Degraded:     summary.Degraded || apps.Degraded,
	}, nil
}
