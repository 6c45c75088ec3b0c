// Package views builds the page view models. Each page fetches a fixed set
// of collections scoped to the current user, aggregates them in memory and
// returns a JSON-ready model.
package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
)

// Store is the subset of storage the pages read from.
type Store interface {
	storage.WorkloadStorage
	storage.DataCenterStorage
	storage.PlanStorage
}

// Loader fetches page data. A failed fetch never surfaces as an error: the
// page gets empty collections and Degraded is set.
type Loader struct {
	store Store
}

func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// fetch describes which collections a page needs. A nil filter skips that
// collection.
type fetch struct {
	workloads   *model.WorkloadFilter
	dataCenters *model.DataCenterFilter
	plans       *model.PlanFilter
}

type pageData struct {
	workloads   []model.Workload
	dataCenters []model.DataCenter
	plans       []model.MigrationPlan
	degraded    bool
}

// load runs the page's fetches concurrently. If any fetch fails, every
// collection is replaced by an empty list.
func (l *Loader) load(ctx context.Context, view, userID string, f fetch) pageData {
	var d pageData
	g, gctx := errgroup.WithContext(ctx)

	if f.workloads != nil {
		f.workloads.UserID = userID
		g.Go(func() error {
			ws, err := l.store.ListWorkloads(gctx, f.workloads)
			d.workloads = ws
			return err
		})
	}
	if f.dataCenters != nil {
		f.dataCenters.UserID = userID
		g.Go(func() error {
			dcs, err := l.store.ListDataCenters(gctx, f.dataCenters)
			d.dataCenters = dcs
			return err
		})
	}
	if f.plans != nil {
		f.plans.UserID = userID
		g.Go(func() error {
			ps, err := l.store.ListPlans(gctx, f.plans)
			d.plans = ps
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("Failed to load page data", "view", view, "user_id", userID, "error", err)
		metrics.ViewDegraded.WithLabelValues(view).Inc()
		return pageData{
			workloads:   []model.Workload{},
			dataCenters: []model.DataCenter{},
			plans:       []model.MigrationPlan{},
			degraded:    true,
		}
	}

	if d.workloads == nil {
		d.workloads = []model.Workload{}
	}
	if d.dataCenters == nil {
		d.dataCenters = []model.DataCenter{}
	}
	if d.plans == nil {
		d.plans = []model.MigrationPlan{}
	}
	return d
}
