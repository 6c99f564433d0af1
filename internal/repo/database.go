package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/model"
)

const (
	dirTemplates     = "templates"
	dirTraders       = "traders"
	dirLocations     = "locations"
	dirGlobalLocales = "locales/global"

	fileItems      = "items.json"
	fileHandbook   = "handbook.json"
	filePrices     = "prices.json"
	fileBase       = "base.json"
	fileAssort     = "assort.json"
	fileStaticLoot = "staticLoot.json"

	renameAttempts = 5
	renameDelay    = 100 * time.Millisecond
)

// Database is the in-memory catalog store: item templates, vendor records, world locations and
// locales. It is owned by a single pipeline run; nothing in it is guarded against concurrent use.
type Database struct {
	Items     map[string]*model.Template
	Handbook  *model.Handbook
	Prices    map[string]float64
	Traders   map[string]*model.Trader
	Locations map[string]*model.Location
	Locales   map[string]model.Locale
}

func NewDatabase() *Database {
	return &Database{
		Items:     make(map[string]*model.Template),
		Handbook:  &model.Handbook{},
		Prices:    make(map[string]float64),
		Traders:   make(map[string]*model.Trader),
		Locations: make(map[string]*model.Location),
		Locales:   make(map[string]model.Locale),
	}
}

// OpenDatabase loads the catalog directory named by the application config.
func OpenDatabase(conf *appconfig.Config) (*Database, error) {
	return LoadDatabase(context.Background(), conf.CatalogDir)
}

// LoadDatabase reads a catalog dump rooted at dir. templates/items.json is required; handbook,
// prices, locales, trader assorts and location static loot are optional.
func LoadDatabase(ctx context.Context, dir string) (*Database, error) {
	db := NewDatabase()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(filepath.Join(dir, dirTemplates, fileItems), &db.Items, true)
	})
	g.Go(func() error {
		return readJSON(filepath.Join(dir, dirTemplates, fileHandbook), db.Handbook, false)
	})
	g.Go(func() error {
		return readJSON(filepath.Join(dir, dirTemplates, filePrices), &db.Prices, false)
	})
	g.Go(func() error {
		return db.loadTraders(ctx, filepath.Join(dir, dirTraders))
	})
	g.Go(func() error {
		return db.loadLocations(ctx, filepath.Join(dir, dirLocations))
	})
	g.Go(func() error {
		return db.loadLocales(ctx, filepath.Join(dir, dirGlobalLocales))
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog from %s", dir)
	}

	for id, tpl := range db.Items {
		if tpl == nil {
			delete(db.Items, id)
			continue
		}
		if tpl.ID == "" {
			tpl.ID = id
		}
	}

	log.Info().
		Str("evt.name", "catalog.loaded").
		Str("dir", dir).
		Int("items", len(db.Items)).
		Int("traders", len(db.Traders)).
		Int("locations", len(db.Locations)).
		Int("locales", len(db.Locales)).
		Msg("catalog loaded")

	return db, nil
}

func (db *Database) loadTraders(ctx context.Context, dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			continue
		}

		trader := &model.Trader{ID: entry.Name()}
		base, err := os.ReadFile(filepath.Join(dir, entry.Name(), fileBase))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "failed to read base of trader %s", entry.Name())
		}
		trader.Base = base

		var assort model.Assort
		if err := readJSON(filepath.Join(dir, entry.Name(), fileAssort), &assort, false); err != nil {
			return err
		}
		trader.Assort = &assort
		trader.EnsureAssort()

		db.Traders[trader.ID] = trader
	}

	return nil
}

func (db *Database) loadLocations(ctx context.Context, dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			continue
		}

		location := &model.Location{Name: entry.Name()}
		var staticLoot map[string]*model.StaticLootContainer
		if err := readJSON(filepath.Join(dir, entry.Name(), fileStaticLoot), &staticLoot, false); err != nil {
			return err
		}
		location.StaticLoot = staticLoot

		db.Locations[location.Name] = location
	}

	return nil
}

func (db *Database) loadLocales(ctx context.Context, dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		locale := model.Locale{}
		if err := readJSON(filepath.Join(dir, entry.Name()), &locale, true); err != nil {
			return err
		}
		db.Locales[strings.TrimSuffix(entry.Name(), ".json")] = locale
	}

	return nil
}

// Save persists the catalog under dir using the layout LoadDatabase reads.
func (db *Database) Save(ctx context.Context, dir string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeJSON(filepath.Join(dir, dirTemplates, fileItems), db.Items)
	})
	g.Go(func() error {
		return writeJSON(filepath.Join(dir, dirTemplates, fileHandbook), db.Handbook)
	})
	g.Go(func() error {
		return writeJSON(filepath.Join(dir, dirTemplates, filePrices), db.Prices)
	})
	g.Go(func() error {
		for id, trader := range db.Traders {
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(trader.Base) > 0 {
				if err := writeFile(filepath.Join(dir, dirTraders, id, fileBase), trader.Base); err != nil {
					return err
				}
			}
			if err := writeJSON(filepath.Join(dir, dirTraders, id, fileAssort), trader.Assort); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for name, location := range db.Locations {
			if err := ctx.Err(); err != nil {
				return err
			}
			if location.StaticLoot == nil {
				continue
			}
			if err := writeJSON(filepath.Join(dir, dirLocations, name, fileStaticLoot), location.StaticLoot); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for code, locale := range db.Locales {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeJSON(filepath.Join(dir, dirGlobalLocales, code+".json"), locale); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.Wrapf(err, "failed to save catalog to %s", dir)
	}

	log.Info().
		Str("evt.name", "catalog.saved").
		Str("dir", dir).
		Msg("catalog saved")

	return nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}
	return entries, nil
}

func readJSON(path string, v any, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return writeFile(path, data)
}

// writeFile replaces path atomically through a sibling temporary file.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	// the game server or a virus scanner may briefly hold the target open on windows
	err := retry.Do(
		func() error { return os.Rename(tmp, path) },
		retry.Attempts(renameAttempts),
		retry.Delay(renameDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
