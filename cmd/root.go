package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every command that loads configuration.
type globalFlags struct {
	configFile  string
	projectRoot string
	logLevel    string
	logFormat   string
}

var (
	version = "dev"
	flags   globalFlags
)

var rootCmd = &cobra.Command{
	Use:   "gworkspace",
	Short: "Multi-account Google Workspace server for MCP clients and HTTP callers",
	Long: `gworkspace exposes Gmail, Calendar, Drive, Docs, Sheets and Contacts
operations for any number of Google accounts.

It serves the same operation catalog two ways:
  - newline-delimited JSON-RPC on stdin/stdout, for MCP clients
  - an HTTP API with an OAuth callback, for browsers and scripts

Run without a subcommand to start the server.`,
	SilenceUsage: true,
}

// SetVersion sets the version reported by the version command and flag.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gworkspace version %s\n" .Version}}`)
	rootCmd.SetArgs(defaultArgs(rootCmd, os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// defaultArgs runs serve when no subcommand is named. Flags are kept, so
// "gworkspace --config x.yaml" serves with that config.
func defaultArgs(root *cobra.Command, args []string) []string {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "-v", "--version", "help", "completion":
			return args
		}
		if c, _, err := root.Find(args); err == nil && c != root {
			return args
		}
	}
	return append([]string{"serve"}, args...)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", os.Getenv("GWORKSPACE_CONFIG"), "YAML configuration file. Can also use GWORKSPACE_CONFIG env var.")
	pf.StringVar(&flags.projectRoot, "project-root", "", "Directory holding config/tokens and workspace downloads. Overrides GOOGLE_WORKSPACE_PROJECT_ROOT.")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error. Overrides GWORKSPACE_LOG_LEVEL.")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json. Overrides GWORKSPACE_LOG_FORMAT.")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
