package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/buildinfo"
	"github.com/matzehuels/fabmenu/pkg/server"
)

// serveCommand creates the serve command that hosts menus over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxMenus int
		maxTotal int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host live menus behind an HTTP API",
		Long: `Start an HTTP server that creates menus, applies pointer and menu
events to them and returns render frames.

Routes:
  GET    /healthz
  GET    /v1/layout
  POST   /v1/simulate
  POST   /v1/menus
  GET    /v1/menus/{id}
  DELETE /v1/menus/{id}
  POST   /v1/menus/{id}/events
  GET    /v1/menus/{id}/frame.svg

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer cc.Close()

			srv := server.New(
				server.WithLogger(c.Logger),
				server.WithCache(cc),
				server.WithMaxMenus(maxMenus),
				server.WithMaxTotal(maxTotal),
			)

			printSuccess("fabmenu %s serving", buildinfo.Short())
			printKeyValue("Address", addr)
			printKeyValue("Max menus", strconv.Itoa(maxMenus))
			printKeyValue("Cache", cacheLabel(noCache))
			printNewline()

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().IntVar(&maxMenus, "max-menus", server.DefaultMaxMenus, "maximum number of live menus")
	cmd.Flags().IntVar(&maxTotal, "max-total", server.DefaultMaxTotal, "maximum item count per request")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// cacheLabel describes the cache backend newCache selects.
func cacheLabel(noCache bool) string {
	switch {
	case noCache:
		return "disabled"
	case redisAddr() != "":
		return "redis " + redisAddr()
	}
	dir, err := cacheDir()
	if err != nil {
		return "disabled"
	}
	return dir
}
