package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strata-dev/strata/internal/config"
	"github.com/strata-dev/strata/internal/errors"
	"github.com/strata-dev/strata/pkg/router"
)

func routesCmd() *cobra.Command {
	var routesDir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long: `Scan the routes directory and print the discovered route table:
URL patterns, parameters, page components, method handlers, and
reserved lifecycle files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(routesDir)
		},
	}

	cmd.Flags().StringVarP(&routesDir, "dir", "d", "", "Routes directory (default from strata.json)")

	return cmd
}

func runRoutes(routesDir string) error {
	if routesDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.Load(wd)
		if err != nil {
			return err
		}
		routesDir = cfg.Routes
	}

	scanned, err := router.NewScanner(routesDir).Scan()
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	if len(scanned) == 0 {
		warn("No route files found in %s", routesDir)
		return nil
	}

	var pages, reserved []router.ScannedRoute
	for _, route := range scanned {
		if route.Reserved != nil {
			reserved = append(reserved, route)
		} else {
			pages = append(pages, route)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Pattern < pages[j].Pattern })

	fmt.Println()
	for _, route := range pages {
		var exports []string
		if route.HasDefault {
			exports = append(exports, "Page")
		}
		exports = append(exports, route.Methods...)
		fmt.Printf("  %-30s %-24s %s\n", route.Pattern, strings.Join(exports, ","), route.FilePath)
	}
	if len(reserved) > 0 {
		fmt.Println()
		for _, route := range reserved {
			fmt.Printf("  %-30s %-24s %s\n", "("+route.Reserved.String()+")", "", route.FilePath)
		}
	}
	fmt.Println()
	success("%d routes, %d reserved files", len(pages), len(reserved))
	return nil
}
