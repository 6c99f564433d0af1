package modconfig

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/model/types"
)

const (
	FileCore       = "config.json"
	FileBarter     = "barter.json"
	FileContainers = "containers.json"
	FileLocales    = "locales.json"
)

type barterFile struct {
	BarterItems        []BarterItem `json:"barterItems"`
	LoyaltyLevelBarter int          `json:"loyaltyLevelBarter"`
}

type containersFile struct {
	SpecialSlotsList    []string   `json:"specialSlotsList"`
	SecureContainers    OrderedMap `json:"secureContainers"`
	OrganizationalPouch OrderedMap `json:"organizationalPouch"`
}

type localesFile struct {
	Locales map[string]types.LocaleDetails `json:"locales"`
}

// Provide loads the mod configuration from the directory named by the application config.
func Provide(conf *appconfig.Config) (*Config, error) {
	return Load(conf.ModConfigDir)
}

// Load reads config.json from dir and merges the optional barter.json, containers.json and
// locales.json on top of it: a split file that exists replaces the fields it covers.
func Load(dir string) (*Config, error) {
	var conf Config
	found, err := readJSON(filepath.Join(dir, FileCore), &conf)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("mod config: %s not found in %s", FileCore, dir)
	}

	var barter barterFile
	if found, err = readJSON(filepath.Join(dir, FileBarter), &barter); err != nil {
		return nil, err
	} else if found {
		conf.BarterCost = barter.BarterItems
		conf.TierBarter = barter.LoyaltyLevelBarter
	}

	var containers containersFile
	if found, err = readJSON(filepath.Join(dir, FileContainers), &containers); err != nil {
		return nil, err
	} else if found {
		conf.SpecialSlots = containers.SpecialSlotsList
		conf.SecureContainers = containers.SecureContainers
		conf.Pouches = containers.OrganizationalPouch
	}

	var locales localesFile
	if found, err = readJSON(filepath.Join(dir, FileLocales), &locales); err != nil {
		return nil, err
	} else if found {
		conf.Locales = locales.Locales
	}

	conf.applyDefaults()

	if err := Validate(&conf); err != nil {
		return nil, err
	}

	log.Debug().
		Str("evt.name", "modconfig.loaded").
		Str("dir", dir).
		Str("itemId", conf.ItemID).
		Int("maps", len(conf.Maps)).
		Int("barterItems", len(conf.BarterCost)).
		Int("locales", len(conf.Locales)).
		Msg("mod configuration loaded")

	return &conf, nil
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "mod config: failed to read %s", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "mod config: failed to decode %s", path)
	}

	return true, nil
}
