package config

import (
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "VOICEKIT"

// Config is the root configuration of the command line tool.
type Config struct {
	Debug bool `fig:"debug"`
	Opus  Opus `fig:"opus"`
}

func NewConfig() Config {
	return Config{Opus: DefaultOpusCfg()}
}

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file.
// Reads and puts environment variables with the prefix VOICEKIT_.
// Params from the config should be in uppercase separated with _.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.voicekit")
		}
	}
	return fig.Load(config, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
}

// LoadConfigEnv populates the struct from environment variables only.
func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}
