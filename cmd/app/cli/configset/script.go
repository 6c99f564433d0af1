package configset

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"exusiai.dev/mapbook/internal/modconfig"
)

func run(dir, file, key, value string) error {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, file)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	updated, err := Set(original, key, value)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	// the edited directory must still load; put the old file back otherwise
	if _, err := modconfig.Load(filepath.Dir(path)); err != nil {
		if restoreErr := os.WriteFile(path, original, info.Mode().Perm()); restoreErr != nil {
			log.Error().Err(restoreErr).Str("path", path).Msg("failed to restore config file")
		}
		return errors.Wrap(err, "config rejected, change reverted")
	}

	log.Info().
		Str("evt.name", "configset.updated").
		Str("path", path).
		Str("key", key).
		Str("previous", gjson.GetBytes(original, key).Raw).
		Str("value", gjson.GetBytes(updated, key).Raw).
		Msg("config updated")

	return nil
}

// Set returns doc with key set to value. value is stored verbatim when it is valid JSON, as a
// JSON string otherwise.
func Set(doc []byte, key, value string) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.New("config file is not valid JSON")
	}

	var (
		updated []byte
		err     error
	)
	if gjson.Valid(value) {
		updated, err = sjson.SetRawBytes(doc, key, []byte(value))
	} else {
		updated, err = sjson.SetBytes(doc, key, value)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set %s", key)
	}

	return updated, nil
}
