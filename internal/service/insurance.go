package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/repo"
)

type Insurance struct {
	ItemRepo *repo.Item
}

func NewInsurance(itemRepo *repo.Item) *Insurance {
	return &Insurance{
		ItemRepo: itemRepo,
	}
}

// Disable marks itemID and every slot target of conf as not insurable. A missing slot target is
// recorded and skipped; a missing itemID aborts with an error before any target is touched.
func (s *Insurance) Disable(ctx context.Context, conf *modconfig.Config, itemID string) (types.Outcomes, error) {
	l := log.Ctx(ctx)

	item, err := s.ItemRepo.GetItemByID(itemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to disable insurance")
	}
	item.EnsureProps().InsuranceDisabled = true

	outcomes := make(types.Outcomes, 0, len(conf.Maps))
	for _, entry := range conf.Maps {
		outcome := types.TargetOutcome{TargetID: entry.Value, Label: entry.Key}

		target, err := s.ItemRepo.GetItemByID(entry.Value)
		if err != nil {
			outcome.Status = types.TargetFailed
			outcome.Err = err
		} else {
			target.EnsureProps().InsuranceDisabled = true
			outcome.Status = types.TargetPatched
		}

		logOutcome(l, "insurance target", outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
