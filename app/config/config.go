/*
Package config loads the server options.

Sources, lowest priority first:

 1. defaults from DefaultOptions
 2. config.yaml in the working directory or ./config
 3. environment variables, including those loaded from .env
 4. command line flags

A flag "mock-delay" is read from the environment as MOCK_DELAY and from the
config file as "mock.delay".
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hackblog/app/log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DevSessionSecret is only fit for local development.
const DevSessionSecret = "hackblog-dev-secret-change-me"

type Options struct {
	Listen        string        `validate:"required,hostname_port"`
	DataDir       string
	MockDelay     time.Duration `validate:"gte=0"`
	SessionSecret string        `validate:"required,min=16"`
	LogLevel      string        `validate:"omitempty,oneof=debug info warn error"`
	CacheSize     int           `validate:"gt=0"`
	ViewerName    string        `validate:"required,min=2,max=50"`
	ViewerAvatar  string
}

func DefaultOptions() *Options {
	return &Options{
		Listen:        "127.0.0.1:8080",
		MockDelay:     300 * time.Millisecond,
		SessionSecret: DevSessionSecret,
		LogLevel:      "info",
		CacheSize:     256,
		ViewerName:    "John Doe",
		ViewerAvatar:  "/static/image-6.png",
	}
}

func (o *Options) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Listen, "listen", o.Listen, "address the http server listens on")
	fs.StringVar(&o.DataDir, "data-dir", o.DataDir, "badger directory for the post store, empty keeps it in memory")
	fs.DurationVar(&o.MockDelay, "mock-delay", o.MockDelay, "nominal latency of the mock data source")
	fs.StringVar(&o.SessionSecret, "session-secret", o.SessionSecret, "secret the session cookie keys are derived from")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug, info, warn or error")
	fs.IntVar(&o.CacheSize, "cache-size", o.CacheSize, "number of rendered post bodies kept in memory")
	fs.StringVar(&o.ViewerName, "viewer-name", o.ViewerName, "comment author used for anonymous viewers")
	fs.StringVar(&o.ViewerAvatar, "viewer-avatar", o.ViewerAvatar, "avatar of the anonymous comment author")
}

var validate = validator.New()

func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Parse fills the flags in fs that were not set on the command line
// from .env, the config file and the environment.
func Parse(fs *pflag.FlagSet) error {
	LoadDotEnv(".env")
	if err := LoadConfigFile(fs, ".", "config"); err != nil {
		return err
	}
	LoadEnv(fs)
	Print(fs)
	return nil
}

// LoadDotEnv exports the variables of the given files into the environment.
// Variables already set keep their value.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Error(err, "failed to load env file", "file", f)
			}
			continue
		}
		log.Info("loaded env file", "file", f)
	}
}

func LoadConfigFile(fs *pflag.FlagSet, dirs ...string) error {
	flagNameToConfigKey := func(fname string) string {
		return strings.ToLower(strings.ReplaceAll(fname, "-", "."))
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Info("no config file found")
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		key := flagNameToConfigKey(f.Name)
		if val := v.GetString(key); val != "" {
			if err := f.Value.Set(val); err != nil {
				errs = append(errs, fmt.Errorf("config file %s: %w", key, err))
			}
		}
	})
	return errors.Join(errs...)
}

func LoadEnv(fs *pflag.FlagSet) {
	flagNameToEnvKey := func(fname string) string {
		return strings.ToUpper(strings.ReplaceAll(fname, "-", "_"))
	}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		envname := flagNameToEnvKey(f.Name)
		if val, ok := os.LookupEnv(envname); ok {
			if err := f.Value.Set(val); err != nil {
				log.Error(err, "ignoring invalid env value", "env", envname)
			}
		}
	})
}

func Print(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "session-secret" {
			return
		}
		log.Info("config", "flag", f.Name, "value", f.Value.String())
	})
}
