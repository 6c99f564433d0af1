package verifs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/pkg/testentry"
	"exusiai.dev/mapbook/internal/repo"
	"exusiai.dev/mapbook/internal/service"
	"exusiai.dev/mapbook/internal/util/verifs"
)

func TestVerifiersFlipOneCheck(t *testing.T) {
	tests := []struct {
		name   string
		failed string
		mutate func(db *repo.Database)
	}{
		{
			name:   "no regression",
			mutate: func(db *repo.Database) {},
		},
		{
			name:   "slots removed",
			failed: "item_slots",
			mutate: func(db *repo.Database) {
				db.Items[testentry.ItemID].Props.Slots = nil
			},
		},
		{
			name:   "vendor offer removed",
			failed: "vendor_offer",
			mutate: func(db *repo.Database) {
				db.Traders[testentry.TraderID].Assort.Items = []*model.AssortItem{}
			},
		},
		{
			name:   "container filter reset",
			failed: "container_filters",
			mutate: func(db *repo.Database) {
				db.Items[testentry.GammaID].Props.Grids[0].Props.Filters = nil
			},
		},
		{
			name:   "insurance flag reset",
			failed: "insurance_flag",
			mutate: func(db *repo.Database) {
				db.Items[testentry.ItemID].Props.InsuranceDisabled = false
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctx := testentry.Context(t)
			db := testentry.Catalog()

			var (
				pipeline  *service.Pipeline
				verifiers *verifs.Verifiers
			)
			testentry.Populate(t, db, nil, &pipeline, &verifiers)

			conf := testentry.ModConfig()
			_, err := pipeline.Run(ctx, conf)
			require.NoError(t, err)

			tt.mutate(db)
			report := verifiers.Verify(ctx, conf)
			require.Len(t, report.Results, 5)

			if tt.failed == "" {
				assert.True(t, report.Passed)
				assert.Equal(t, verifs.SummarySuccess, report.Summary)
				assert.Empty(t, report.Failed())
				return
			}

			assert.False(t, report.Passed)
			assert.Equal(t, verifs.SummaryPartialFailure, report.Summary)
			assert.Equal(t, []string{tt.failed}, report.Failed())
		})
	}
}

func TestContainerVerifier(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()

	var verifier *verifs.ContainerVerifier
	testentry.Populate(t, db, nil, &verifier)

	conf := testentry.ModConfig()
	rejection := verifier.Verify(ctx, conf)
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Message, "Gamma ("+testentry.GammaID+")")
	assert.NotContains(t, rejection.Message, testentry.EmptyCaseID)

	// the check does not depend on whether the patcher was allowed to run
	conf.AllowInSecureContainers = false
	rejection = verifier.Verify(ctx, conf)
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Message, testentry.GammaID)

	db.Items[testentry.GammaID].Props.Grids[0].EnsureFilter().Add(testentry.ItemID)
	assert.Nil(t, verifier.Verify(ctx, conf))

	// a declared but empty grid list cannot hold the item
	db.Items[testentry.EmptyCaseID].Props.Grids = []*model.Grid{}
	rejection = verifier.Verify(ctx, conf)
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Message, "Empty case ("+testentry.EmptyCaseID+")")
	assert.NotContains(t, rejection.Message, testentry.GammaID)
}

func TestItemVerifierOrder(t *testing.T) {
	var verifiers *verifs.Verifiers
	testentry.Populate(t, testentry.Catalog(), nil, &verifiers)

	names := make([]string, 0, len(*verifiers))
	for _, v := range *verifiers {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"item_exists", "item_slots", "vendor_offer", "container_filters", "insurance_flag"}, names)
}
