package config

import "github.com/spf13/viper"

// Mode selects how resolved credentials are handed out.
type Mode int

const (
	PassThrough Mode = iota
	ProcessCredential
	DotenvFile
)

func (m Mode) String() string {
	switch m {
	case ProcessCredential:
		return "process-credential"
	case DotenvFile:
		return "dotenv-file"
	default:
		return "pass-through"
	}
}

// Environment is the part of the process environment the helper reads,
// captured once at startup.
type Environment struct {
	Profile     string
	ProcessMode bool
	DotenvMode  bool

	// Vars is the full variable list in os.Environ form, the base for the
	// wrapped command's environment.
	Vars []string
}

func NewEnvironment(v *viper.Viper, vars []string) Environment {
	return Environment{
		Profile:     v.GetString(PROFILE),
		ProcessMode: v.GetString(PROCESS_MODE) != "",
		DotenvMode:  v.GetString(DOTENV_MODE) != "",
		Vars:        vars,
	}
}

// Mode resolves the output mode. Process-credential mode wins when both
// flags are set.
func (e Environment) Mode() Mode {
	switch {
	case e.ProcessMode:
		return ProcessCredential
	case e.DotenvMode:
		return DotenvFile
	default:
		return PassThrough
	}
}
