// Package config defines the data structures related to configuration and
// includes functions for loading and checking it.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for rent-vs-buy.
type Configuration struct {
	Scenario scenario.Inputs `yaml:"scenario" mapstructure:"scenario"`
	Logging  LoggingConfig   `yaml:"logging,omitempty"`
	Output   OutputConfig    `yaml:"output,omitempty"`
	Store    StoreConfig     `yaml:"store,omitempty"`
	Cache    CacheConfig     `yaml:"cache,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// StoreConfig locates the saved scenario database.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// CacheConfig selects where analyses are memoized.
type CacheConfig struct {
	Backend string        `yaml:"backend,omitempty"` // memory, redis, none
	Address string        `yaml:"address,omitempty"` // redis host:port
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every scenario key needs a default for environment overrides to apply.
	encoded, err := json.Marshal(scenario.Defaults())
	if err != nil {
		return nil, err
	}
	var defaults map[string]any
	if err := json.Unmarshal(encoded, &defaults); err != nil {
		return nil, err
	}
	for key, value := range defaults {
		v.SetDefault("scenario."+key, value)
	}
	v.SetDefault("scenario.extraPrincipalPayment", 0.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("store.path", constants.DefaultStorePath)
	v.SetDefault("cache.backend", constants.CacheBackendMemory)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.ttl", time.Hour)

	return v, nil
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

// DefaultConfiguration returns the defaults with environment overrides applied.
func DefaultConfiguration() (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	in := c.Scenario

	if in.PMIEnabled && in.DownPaymentPercent >= constants.PMIDownPaymentThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"PMI is enabled but a %.0f%% down payment never requires it", in.DownPaymentPercent))
	}

	if first := constants.MilestoneYears[0]; in.HorizonYears < first {
		warnings = append(warnings, fmt.Sprintf(
			"horizon of %d years is shorter than the %d-year milestone; milestone metrics will be zero",
			in.HorizonYears, first))
	}

	if in.HorizonYears > in.LoanTermYears && in.LoanTermYears > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"horizon of %d years outlasts the %d-year loan; later years carry no mortgage",
			in.HorizonYears, in.LoanTermYears))
	}

	switch c.Cache.Backend {
	case constants.CacheBackendMemory, constants.CacheBackendRedis, constants.CacheBackendNone:
	default:
		warnings = append(warnings, fmt.Sprintf(
			"unknown cache backend %q; caching will be disabled", c.Cache.Backend))
	}

	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}

	return warnings
}
