// Command vango-ssr renders components to markup from the command line or
// over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ssr/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌─┐┌┐┌┌─┐┌─┐  ┌─┐┌─┐┬─┐
  ╚╗╔╝├─┤││││ ┬│ │  └─┐└─┐├┬┘
   ╚╝ ┴ ┴┘└┘└─┘└─┘  └─┘└─┘┴└─
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vango-ssr",
		Short: "Render components to HTML without a browser",
		Long: `vango-ssr renders a registered component, identified by its tag name,
into declarative shadow DOM markup.

Use it to pre-render fragments at build time, publish them to object
storage, or run a render service that other processes call over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing vango-ssr.json or vango-ssr.yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		componentsCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
