package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/a-jentleman/pseudo-enum/internal/config"
)

// envConfig overrides the configuration path when --config is not given.
const envConfig = "PSEUDO_ENUM_CONFIG"

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		reportError(stderr, err)
	}

	return exitCode(err)
}

// options holds the state shared by all subcommands of one invocation.
type options struct {
	stdout io.Writer
	stderr io.Writer

	verbose bool
	config  string
	out     string

	log zerolog.Logger
}

// newRootCmd returns the base command, which dispatches to init and build.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr, log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "pseudo-enum",
		Short: "Generate Luau enum modules from a TOML file",
		Long: `Generate Luau enum modules from a TOML file.

Run "pseudo-enum init" to scaffold ` + config.DefaultPath + `, declare your enums under [enums] and run "pseudo-enum build" to write the module to build_path.`,
		Example:       "pseudo-enum init\npseudo-enum build --out <STDOUT>",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			opts.log = newLogger(opts.stderr, opts.verbose)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Kind: MissingCommand}
			}
			return &UsageError{Kind: UnknownCommand, Command: args[0]}
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Kind: InvalidFlag, Err: err}
	})

	fs := rootCmd.PersistentFlags()
	fs.StringVarP(&opts.config, "config", "c", config.DefaultPath, "configuration file to use. If not specified, config defaults to the value of $"+envConfig+", then to "+config.DefaultPath)
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details")

	rootCmd.AddCommand(newInitCmd(opts), newBuildCmd(opts))

	return rootCmd
}

// configPath returns the configuration file selected by the flags or the environment.
func (o *options) configPath(cmd *cobra.Command) string {
	if path, ok := resolveParameterValue(cmd.Flag("config"), envConfig); ok && path != "" {
		return path
	}
	return config.DefaultPath
}

// resolveParameterValue returns the parameter value from f if it was specified
// by the user. Otherwise, if env is not empty, it looks up the value from the
// environment variable named env.
func resolveParameterValue(f *pflag.Flag, env string) (string, bool) {
	if f.Changed {
		return f.Value.String(), true
	}

	if env != "" {
		return os.LookupEnv(env)
	}

	return f.DefValue, false
}
