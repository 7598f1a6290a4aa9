package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tagsort/internal/tokens"
)

// Configuration keys. Flags and TAGSORT_* environment variables use the same
// names, with dashes and upper case respectively.
const (
	KeyCategories     = "categories"
	KeyCategoriesFile = "categories_file"
	KeyPreset         = "preset"
	KeyPromptFile     = "prompt_file"
	KeyExemptKeywords = "exempt_keywords"
	KeySortListing    = "sort_listing"
	KeyIndexSelection = "index_selection"
	KeyNoColor        = "no_color"
	KeyDebug          = "debug"
	KeyLogFile        = "log_file"
	KeyLogFormat      = "log_format"
)

const (
	EnvPrefix         = "TAGSORT"
	DefaultConfigName = "tagsort"
	DefaultPromptFile = "prompt.txt"
	DefaultLogFile    = "tagsort-debug.log"
)

// Config is the resolved runtime configuration.
type Config struct {
	Categories     []string
	CategoriesFile string
	Preset         string
	PromptFile     string
	ExemptKeywords []string
	SortListing    bool
	IndexSelection bool
	NoColor        bool
	Debug          bool
	LogFile        string
	LogFormat      string

	// ConfigFile is the file viper loaded, empty when none was found.
	ConfigFile string
}

// LoadOptions control where Load looks for settings.
type LoadOptions struct {
	// ConfigFile forces a specific config file. It must exist.
	ConfigFile string
	// SearchPaths are searched for tagsort.{yaml,json,toml} when ConfigFile is
	// empty. Defaults to the working directory and $HOME.
	SearchPaths []string
	// Flags are bound by key name; a flag named "prompt-file" binds
	// prompt_file. Only flags the user changed override other sources.
	Flags *pflag.FlagSet
}

// New returns a viper instance with defaults registered.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyCategories, []string{})
	v.SetDefault(KeyPromptFile, DefaultPromptFile)
	v.SetDefault(KeyExemptKeywords, tokens.DefaultExemptKeywords)
	v.SetDefault(KeySortListing, true)
	v.SetDefault(KeyIndexSelection, false)
	v.SetDefault(KeyLogFormat, "text")
	return v
}

// Load resolves configuration from defaults, an optional config file, the
// environment and flags, in increasing order of precedence.
func Load(opts LoadOptions) (Config, error) {
	v := New()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{".", "$HOME"}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(flag *pflag.Flag) {
			key := strings.ReplaceAll(flag.Name, "-", "_")
			if !isKnownKey(key) || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, flag)
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	cfg := Config{
		Categories:     stringList(v, KeyCategories),
		CategoriesFile: strings.TrimSpace(v.GetString(KeyCategoriesFile)),
		Preset:         strings.TrimSpace(v.GetString(KeyPreset)),
		PromptFile:     strings.TrimSpace(v.GetString(KeyPromptFile)),
		ExemptKeywords: stringList(v, KeyExemptKeywords),
		SortListing:    v.GetBool(KeySortListing),
		IndexSelection: v.GetBool(KeyIndexSelection),
		NoColor:        v.GetBool(KeyNoColor),
		Debug:          v.GetBool(KeyDebug),
		LogFile:        strings.TrimSpace(v.GetString(KeyLogFile)),
		LogFormat:      strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if cfg.Debug && cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	return cfg, nil
}

var knownKeys = []string{
	KeyCategories,
	KeyCategoriesFile,
	KeyPreset,
	KeyPromptFile,
	KeyExemptKeywords,
	KeySortListing,
	KeyIndexSelection,
	KeyNoColor,
	KeyDebug,
	KeyLogFile,
	KeyLogFormat,
}

func isKnownKey(key string) bool {
	for _, known := range knownKeys {
		if known == key {
			return true
		}
	}
	return false
}

// stringList reads a list setting. Lists coming from the environment or a
// string flag arrive as one comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	var values []string
	switch raw := v.Get(key).(type) {
	case string:
		values = strings.Split(raw, ",")
	default:
		values = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
