package model

import "github.com/goccy/go-json"

// Locale maps locale keys to text for a single language.
type Locale map[string]string

const (
	LocaleFieldName        = "Name"
	LocaleFieldShortName   = "ShortName"
	LocaleFieldDescription = "Description"
)

// LocaleKey returns the key under which a template's text field is stored.
func LocaleKey(templateID, field string) string {
	return templateID + " " + field
}

type Handbook struct {
	Categories json.RawMessage `json:"Categories"`
	Items      []*HandbookItem `json:"Items"`
}

type HandbookItem struct {
	ID       string  `json:"Id"`
	ParentID string  `json:"ParentId"`
	Price    float64 `json:"Price"`
}
