package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	strataerrors "github.com/strata-dev/strata/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Server-rendered web applications in Go",
		Long: `Strata is a meta-framework for server-rendered web apps in Go.

Routes are plain Go files laid out on disk: the file path is the URL,
bracket segments capture parameters, and underscore files bind the
not-found page, the error page, and layouts. Pages render on the
server; islands hydrate selectively on the client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		devCmd(),
		routesCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var serr *strataerrors.StrataError
		if errors.As(err, &serr) {
			fmt.Fprint(os.Stderr, serr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an indented info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
