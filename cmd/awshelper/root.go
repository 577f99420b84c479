package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stensonb/awshelper/lib"
	"github.com/stensonb/awshelper/lib/config"
	"github.com/stensonb/awshelper/lib/log"
	"github.com/stensonb/awshelper/lib/runner"
)

var rootCmd = &cobra.Command{
	Use:   config.AWSHELPER + " [--profile <name> | --profile=<name>] <command...>",
	Short: "Run a command with the AWS SSO credentials cached by the AWS CLI",
	Long: `Run a command with the AWS SSO credentials cached by the AWS CLI.

The profile comes from --profile (first argument only) or AWS_PROFILE. The rest
of the arguments are joined and run by the shell with AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN set.

Set EXTERNAL_PROCESS_MODE to print a credential_process document instead, or
DOTENV_MODE to write the credentials into ./.env.`,
	// Every argument after the profile belongs to the wrapped command.
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := childExitCode(err); ok {
			os.Exit(code)
		}
		log.Exit(err)
	}
}

// childExitCode reports the exit code of a wrapped command that failed. Such
// failures are forwarded silently; the child has already reported them.
func childExitCode(err error) (int, bool) {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loadConfig(viper.GetViper(), filepath.Join(config.ConfigPath(), "config.yaml"))
}

func loadConfig(v *viper.Viper, file string) {
	config.Init(v)

	v.SetConfigFile(file)
	err := v.ReadInConfig()

	// trace may itself come from the config file
	log.IsTraceEnabled = v.GetBool(config.TRACE)
	if err == nil {
		log.Traceln("Using config file: %s", v.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings := config.LoadSettings(viper.GetViper())
	env := config.NewEnvironment(viper.GetViper(), os.Environ())

	h, err := lib.NewHelper(settings, env)
	if err != nil {
		return err
	}

	return h.Run(cmd.Context(), append([]string{cmd.Root().Name()}, args...))
}
