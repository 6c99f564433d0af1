package appconfig

import (
	"exusiai.dev/mapbook/internal/app/appcontext"
)

type ConfigSpec struct {
	// CatalogDir is the root of the catalog dump the pipeline reads from. It is expected to contain
	// the templates/, traders/, locations/ and locales/ directories.
	CatalogDir string `required:"true" split_words:"true" default:"database"`

	// OutputDir is where the mutated catalog is persisted after a run. Leaving this empty writes
	// the catalog back in place, into CatalogDir.
	OutputDir string `split_words:"true"`

	// ModConfigDir is the directory holding config.json, barter.json, containers.json and locales.json.
	ModConfigDir string `required:"true" split_words:"true" default:"config"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogLevel is the minimum level written by the logger. A mod config with enableDebugging set
	// lowers this to debug for the duration of a pipeline run.
	LogLevel string `split_words:"true" default:"info"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/mapbook.log"`

	// DevMode to indicate development mode. When true, the logger runs at trace level.
	DevMode bool `split_words:"true"`

	// MetricsTextfile is the path the prometheus metrics of a run are flushed to, in the text
	// exposition format understood by node_exporter's textfile collector. Leaving this empty
	// disables the flush.
	MetricsTextfile string `split_words:"true"`

	// IdempotentRerun guards against duplicated side effects when the pipeline runs against a catalog
	// it has already patched: an existing item is not cloned again, and vendor offers and loot entries
	// already present for the item are not appended again.
	IdempotentRerun bool `split_words:"true" default:"false"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
