// Package cli wires the mezdisk command line to the scanner and the report.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/mezdisk/internal/config"
	"github.com/lumipallolabs/mezdisk/internal/logging"
)

var version = "dev"

// SetVersion sets the version shown by --version
func SetVersion(v string) {
	version = v
}

// CLI holds the output streams commands write to
type CLI struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates a CLI writing the report to stdout and everything else to stderr
func New(stdout, stderr io.Writer) *CLI {
	return &CLI{stdout: stdout, stderr: stderr}
}

// Default creates a CLI on the process streams
func Default() *CLI {
	return New(os.Stdout, os.Stderr)
}

// RootCommand builds the mezdisk command tree
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := c.scanCommand()
	root.Version = version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(c.stderr, level)))
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config", "", "config file (default ~/.mezdisk/config.toml)")

	root.AddCommand(c.configCommand())
	return root
}

// configPath returns the --config value or the default location
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultPath()
}
