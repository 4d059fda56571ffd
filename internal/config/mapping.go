package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// MappingConfig carries additional provider-status synonyms layered on top
// of the built-in vocabulary. Keys are application statuses, values are
// provider statuses (matched case-insensitively).
type MappingConfig struct {
	Confirmed []string `mapstructure:"confirmed"`
	Failed    []string `mapstructure:"failed"`
}

func DefaultMappingConfig() MappingConfig {
	return MappingConfig{}
}

// MappingHolder exposes the current status-mapping overrides. The value is
// swapped atomically on file change, readers never block.
type MappingHolder struct {
	current atomic.Value // holds MappingConfig
}

// NewMappingHolder reads optional mapping overrides from feexgate.yml and
// keeps them hot-reloaded. A missing file yields the built-in defaults.
func NewMappingHolder() (*MappingHolder, error) {
	v := viper.New()

	v.SetConfigName("feexgate")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/feexgate/config") // Volume-mounted config
	v.AddConfigPath("/etc/feexgate")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("FEEXGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &MappingHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultMappingConfig())
		return holder, nil
	}

	var cfg MappingConfig
	if err := v.UnmarshalKey("status_mapping", &cfg); err != nil {
		return nil, err
	}
	if err := validateMappingConfig(cfg); err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated MappingConfig
		if err := v.UnmarshalKey("status_mapping", &updated); err != nil {
			log.Printf("[status-mapping] reload failed: %v", err)
			return
		}
		if err := validateMappingConfig(updated); err != nil {
			log.Printf("[status-mapping] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[status-mapping] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticMappingHolder wraps a fixed config, for callers that do not
// load overrides from a file.
func NewStaticMappingHolder(cfg MappingConfig) *MappingHolder {
	holder := &MappingHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *MappingHolder) Get() MappingConfig {
	return h.current.Load().(MappingConfig)
}

func validateMappingConfig(cfg MappingConfig) error {
	for _, s := range append(append([]string{}, cfg.Confirmed...), cfg.Failed...) {
		if strings.TrimSpace(s) == "" {
			return errors.New("status_mapping entries cannot be blank")
		}
	}
	return nil
}
