package config

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const AWSHELPER = "awshelper"

// Settings keys, overridable with AWSHELPER_<KEY> or the config file.
const (
	AWS_CLI     = "aws_cli"
	SHELL       = "shell"
	CACHE_DIR   = "cache_dir"
	CONFIG_FILE = "config_file"
	DOTENV_FILE = "dotenv_file"
	TRACE       = "trace"
)

// Environment snapshot keys.
const (
	PROFILE      = "profile"
	PROCESS_MODE = "process_mode"
	DOTENV_MODE  = "dotenv_mode"
)

// Variables read from, or written to, the process environment.
const (
	ENV_PROFILE        = "AWS_PROFILE"
	ENV_CONFIG_FILE    = "AWS_CONFIG_FILE"
	ENV_PROCESS_MODE   = "EXTERNAL_PROCESS_MODE"
	ENV_DOTENV_MODE    = "DOTENV_MODE"
	ENV_ACTIVE         = "AWSHELPER_ACTIVE"
	ENV_ACTIVE_PROFILE = "AWSHELPER_PROFILE"
)

const (
	DEFAULT_AWS_CLI     = "aws"
	DEFAULT_SHELL       = "/bin/sh"
	DEFAULT_DOTENV_FILE = ".env"
)

// ConfigPath is the directory holding the optional config.yaml.
func ConfigPath() string {
	path, err := homedir.Expand(filepath.Join("~", ".config", AWSHELPER))
	if err != nil {
		return filepath.Join(".config", AWSHELPER)
	}
	return path
}

// Init registers defaults and environment bindings on v.
func Init(v *viper.Viper) {
	v.SetDefault(AWS_CLI, DEFAULT_AWS_CLI)
	v.SetDefault(SHELL, DEFAULT_SHELL)
	v.SetDefault(DOTENV_FILE, DEFAULT_DOTENV_FILE)
	v.SetDefault(TRACE, false)

	v.SetEnvPrefix(AWSHELPER)
	v.AutomaticEnv()

	// BindEnv only fails when called without a key.
	_ = v.BindEnv(CONFIG_FILE, "AWSHELPER_CONFIG_FILE", ENV_CONFIG_FILE)
	_ = v.BindEnv(PROFILE, ENV_PROFILE)
	_ = v.BindEnv(PROCESS_MODE, ENV_PROCESS_MODE)
	_ = v.BindEnv(DOTENV_MODE, ENV_DOTENV_MODE)
}

type Settings struct {
	AWSCLI     string
	Shell      string
	CacheDir   string
	ConfigFile string
	DotenvFile string
	Trace      bool
}

func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		AWSCLI:     v.GetString(AWS_CLI),
		Shell:      v.GetString(SHELL),
		CacheDir:   v.GetString(CACHE_DIR),
		ConfigFile: v.GetString(CONFIG_FILE),
		DotenvFile: v.GetString(DOTENV_FILE),
		Trace:      v.GetBool(TRACE),
	}
}
