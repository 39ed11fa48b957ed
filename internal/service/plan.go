package service

import (
	"context"
	"errors"
	"time"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// PlanUpdate is the partial facet update for plans. A nil pointer keeps
// the current window boundary.
type PlanUpdate struct {
	TargetStartTime *time.Time
	TargetEndTime   *time.Time
}

// PlanService aggregates PLAN content.
type PlanService = ContentService[*model.Plan, PlanUpdate]

func NewPlanService(s store.Store, counter cache.Counter) *PlanService {
	return &PlanService{
		store:   s,
		counter: counter,
		binding: binding[*model.Plan, PlanUpdate]{
			kind:   model.KindPlan,
			limits: generalLimits(nil),
			createFacet: func(ctx context.Context, tx store.Store, contentID string, facet *model.Plan) error {
				plan := &model.Plan{ContentID: contentID}
				if facet != nil {
					plan.TargetStartTime = facet.TargetStartTime
					plan.TargetEndTime = facet.TargetEndTime
				}
				return tx.CreatePlan(ctx, plan)
			},
			getFacet: func(ctx context.Context, s store.Store, contentID string) (*model.Plan, bool, error) {
				plan, err := s.GetPlan(ctx, contentID)
				if errors.Is(err, store.ErrNotFound) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				return plan, true, nil
			},
			listFacets: func(ctx context.Context, s store.Store, contentIDs []string) (map[string]*model.Plan, error) {
				plans, err := s.ListPlansFromIDs(ctx, contentIDs)
				if err != nil {
					return nil, err
				}
				facets := make(map[string]*model.Plan, len(plans))
				for _, plan := range plans {
					facets[plan.ContentID] = plan
				}
				return facets, nil
			},
			saveFacet: func(ctx context.Context, tx store.Store, facet *model.Plan) error {
				return tx.SavePlan(ctx, facet)
			},
			deleteFacet: func(ctx context.Context, tx store.Store, contentID string) error {
				return tx.DeletePlan(ctx, contentID)
			},
			applyUpdate: func(facet *model.Plan, update PlanUpdate) {
				if update.TargetStartTime != nil {
					facet.TargetStartTime = update.TargetStartTime
				}
				if update.TargetEndTime != nil {
					facet.TargetEndTime = update.TargetEndTime
				}
			},
			facetValues: func(facet *model.Plan) map[string]string {
				return nil
			},
		},
	}
}
