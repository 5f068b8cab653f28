// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"code.hybscloud.com/stream"
)

const (
	envPrefix        = "STREAMJOB"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Settings is the complete streamjob configuration.
type Settings struct {
	Log  LogSettings               `mapstructure:"log"`
	Run  RunSettings               `mapstructure:"run"`
	Jobs map[string]map[string]any `mapstructure:"jobs"`
}

// LogSettings controls the diagnostic log on stderr.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RunSettings controls a single session run.
type RunSettings struct {
	// Timeout bounds the whole run (0 = none).
	Timeout time.Duration `mapstructure:"timeout"`
	// CloseAfter requests close after this long (0 = never).
	CloseAfter time.Duration `mapstructure:"close_after"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"config":      "config",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"timeout":     "run.timeout",
	"close-after": "run.close_after",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("run.timeout", "0s")
	v.SetDefault("run.close_after", "0s")
}

// bindFlags binds every known flag of fs to its configuration key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

// loadSettings reads defaults, the config file, STREAMJOB_* environment
// variables and bound flags, in increasing precedence.
func loadSettings(v *viper.Viper) (Settings, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("streamjob")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// Only an explicitly named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// jobConfig merges the configured options of job with k=v overrides.
func (s Settings) jobConfig(job string, overrides []string) (stream.Config, error) {
	cfg := stream.Config{}
	// Keys are lower-cased by viper.
	for k, v := range s.Jobs[strings.ToLower(job)] {
		cfg[k] = v
	}
	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("option %q: want key=value", kv)
		}
		cfg[k] = v
	}
	return cfg, nil
}
