package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/internal/kernel"
	"github.com/shashiranjanraj/kalaghar/internal/server"
	"github.com/shashiranjanraj/kalaghar/pkg/cache"
	"github.com/shashiranjanraj/kalaghar/pkg/router"
	"github.com/shashiranjanraj/kalaghar/pkg/storage"
)

// kalaghar serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cmd.Context())
	},
}

// kalaghar route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k := kernel.NewHTTPKernel(kernel.Deps{
			Store: repositories.NewMemoryStore(),
			Cache: cache.NewMemory(),
			Disk:  storage.NewLocal(os.TempDir(), ""),
		})
		return printRoutes(cmd.OutOrStdout(), k.Router())
	},
}

func printRoutes(out io.Writer, r *router.Router) error {
	infos := r.Routes()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No named routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
