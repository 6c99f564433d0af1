package verifs

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/repo"
)

type ContainerVerifier struct {
	ItemRepo *repo.Item
}

// ensure ContainerVerifier conforms to Verifier
var _ Verifier = (*ContainerVerifier)(nil)

func NewContainerVerifier(itemRepo *repo.Item) *ContainerVerifier {
	return &ContainerVerifier{
		ItemRepo: itemRepo,
	}
}

func (v *ContainerVerifier) Name() string {
	return "container_filters"
}

// Verify checks that every configured secure container has a grid accepting the item. Unknown
// containers and containers declaring no grids at all are ignored; an empty grid list fails.
func (v *ContainerVerifier) Verify(ctx context.Context, conf *modconfig.Config) *Rejection {
	var missing []string
	for _, entry := range conf.SecureContainers {
		container, err := v.ItemRepo.GetItemByID(entry.Key)
		if err != nil || container.Props == nil || container.Props.Grids == nil {
			continue
		}

		found := lo.ContainsBy(container.Props.Grids, func(g *model.Grid) bool {
			return g.Accepts(conf.ItemID)
		})
		if !found {
			missing = append(missing, fmt.Sprintf("%s (%s)", entry.Value, entry.Key))
		}
	}

	if len(missing) > 0 {
		return &Rejection{
			Severity: zerolog.WarnLevel,
			Message:  "mapbook missing from container filters: " + strings.Join(missing, ", "),
		}
	}
	return nil
}
