package profile

import (
	"strings"

	"github.com/stensonb/awshelper/lib/config"
)

const flagProfile = "--profile"

// Reference is the profile named on the command line or in the environment,
// with the number of leading arguments the profile flag took.
type Reference struct {
	Name         string
	ArgsConsumed int
}

// Resolve extracts the profile from args, where args[0] is the program name.
// The flag is only recognised as the first argument. A flag value wins over
// env.Profile. An empty Name means no profile was found.
func Resolve(args []string, env config.Environment) Reference {
	if len(args) < 2 {
		return Reference{Name: env.Profile}
	}

	var ref Reference
	if strings.HasPrefix(strings.ToLower(args[1]), flagProfile) {
		if _, value, ok := strings.Cut(args[1], "="); ok {
			ref = Reference{Name: value, ArgsConsumed: 1}
		} else {
			ref.ArgsConsumed = 2
			if len(args) > 2 {
				ref.Name = args[2]
			}
		}
	}

	if ref.Name == "" {
		ref.Name = env.Profile
	}
	return ref
}

// Command returns the arguments left for the wrapped command.
func (r Reference) Command(args []string) []string {
	start := 1 + r.ArgsConsumed
	if start >= len(args) {
		return nil
	}
	return args[start:]
}
