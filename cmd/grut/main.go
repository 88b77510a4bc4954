package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
	verbose   bool
	overrides []string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "grut",
		Short:   "grut - a minimal content-addressed version control system",
		Long:    getBanner(),
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")
	pf.StringArrayVarP(&flags.overrides, "config", "c", nil, "Override a configuration value for this run (key=value)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd(flags))
	rootCmd.AddCommand(newCommitCmd(flags))
	rootCmd.AddCommand(newLogCmd(flags))
	rootCmd.AddCommand(newShowCmd(flags))
	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newVerifyCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

func getBanner() string {
	return `
   ██████╗ ██████╗ ██╗   ██╗████████╗
  ██╔════╝ ██╔══██╗██║   ██║╚══██╔══╝
  ██║  ███╗██████╔╝██║   ██║   ██║
  ██║   ██║██╔══██╗██║   ██║   ██║
  ╚██████╔╝██║  ██║╚██████╔╝   ██║
   ╚═════╝ ╚═╝  ╚═╝ ╚═════╝    ╚═╝

  Snapshots of your files, addressed by their content.

  Get started with: grut init
  Stage a file:     grut add <file>
  Record it:        grut commit -m "message"
`
}
