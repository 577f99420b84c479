package config

import (
	"testing"

	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	Init(v)
	return v
}

func TestModePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		process bool
		dotenv  bool
		want    Mode
	}{
		{"neither", false, false, PassThrough},
		{"process", true, false, ProcessCredential},
		{"dotenv", false, true, DotenvFile},
		{"both", true, true, ProcessCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Environment{ProcessMode: tt.process, DotenvMode: tt.dotenv}
			assert.Equal(t, env.Mode(), tt.want)
		})
	}
}

func TestNewEnvironmentReadsProcessEnv(t *testing.T) {
	t.Setenv(ENV_PROFILE, "dev")
	t.Setenv(ENV_PROCESS_MODE, "yes")
	t.Setenv(ENV_DOTENV_MODE, "")

	vars := []string{"A=1"}
	env := NewEnvironment(newViper(t), vars)

	assert.Equal(t, env.Profile, "dev")
	assert.Check(t, env.ProcessMode)
	assert.Check(t, !env.DotenvMode)
	assert.DeepEqual(t, env.Vars, vars)
	assert.Equal(t, env.Mode(), ProcessCredential)
}

func TestNewEnvironmentAnyValueEnablesMode(t *testing.T) {
	t.Setenv(ENV_PROCESS_MODE, "")
	t.Setenv(ENV_DOTENV_MODE, "0")

	env := NewEnvironment(newViper(t), nil)
	assert.Equal(t, env.Mode(), DotenvFile)
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv(ENV_CONFIG_FILE, "")
	t.Setenv("AWSHELPER_CONFIG_FILE", "")

	s := LoadSettings(newViper(t))
	assert.Equal(t, s.AWSCLI, DEFAULT_AWS_CLI)
	assert.Equal(t, s.Shell, DEFAULT_SHELL)
	assert.Equal(t, s.DotenvFile, DEFAULT_DOTENV_FILE)
	assert.Equal(t, s.CacheDir, "")
	assert.Equal(t, s.ConfigFile, "")
	assert.Check(t, !s.Trace)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	t.Setenv("AWSHELPER_AWS_CLI", "/opt/aws/bin/aws")
	t.Setenv("AWSHELPER_TRACE", "true")
	t.Setenv("AWSHELPER_CONFIG_FILE", "")
	t.Setenv(ENV_CONFIG_FILE, "/tmp/aws-config")

	s := LoadSettings(newViper(t))
	assert.Equal(t, s.AWSCLI, "/opt/aws/bin/aws")
	assert.Check(t, s.Trace)
	assert.Equal(t, s.ConfigFile, "/tmp/aws-config")
}
