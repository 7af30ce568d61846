package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "MDYML"

	DefaultCisagovURL = "https://raw.githubusercontent.com/cisagov/log4j-affected-db/develop/SOFTWARE-LIST.md"
	DefaultNcscNLURL  = "https://raw.githubusercontent.com/NCSC-NL/log4shell/main/software/README.md"
)

type Settings struct {
	Sources      map[string]string
	FetchTimeout time.Duration
	LogLevel     string
	Similarity   float64
	Database     string

	// File is the config file that was read, if any.
	File string
}

// Load reads settings from cfgFile (or ./.mdyml.yaml when empty), a .env
// file and MDYML_* environment variables.
func Load(cfgFile string) (*Settings, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".mdyml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("sources.cisagov.url", DefaultCisagovURL)
	v.SetDefault("sources.ncsc_nl.url", DefaultNcscNLURL)
	v.SetDefault("fetch.timeout", "60s")
	v.SetDefault("log_level", "info")
	v.SetDefault("normalize.similarity", 0.9)
	v.SetDefault("store.path", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Debugf("Using config file: %s", v.ConfigFileUsed())
	}

	return &Settings{
		Sources: map[string]string{
			"cisagov": v.GetString("sources.cisagov.url"),
			"ncsc-nl": v.GetString("sources.ncsc_nl.url"),
		},
		FetchTimeout: v.GetDuration("fetch.timeout"),
		LogLevel:     v.GetString("log_level"),
		Similarity:   v.GetFloat64("normalize.similarity"),
		Database:     v.GetString("store.path"),
		File:         v.ConfigFileUsed(),
	}, nil
}
