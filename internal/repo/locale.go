package repo

import (
	"sort"

	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/model"
)

type Locale struct {
	db *Database
}

func NewLocale(db *Database) *Locale {
	return &Locale{db: db}
}

// Codes returns the language codes present in the catalog, sorted.
func (r *Locale) Codes() []string {
	codes := lo.Keys(r.db.Locales)
	sort.Strings(codes)
	return codes
}

// SetText stores text under key for the language code, creating the language when absent.
func (r *Locale) SetText(code, key, text string) {
	locale, ok := r.db.Locales[code]
	if !ok {
		locale = model.Locale{}
		r.db.Locales[code] = locale
	}
	locale[key] = text
}

func (r *Locale) GetText(code, key string) (string, bool) {
	text, ok := r.db.Locales[code][key]
	return text, ok
}
