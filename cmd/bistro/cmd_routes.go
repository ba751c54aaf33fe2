package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/pkg/router"
)

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are never invoked here, so controllers are built
		// without their dependencies.
		r := router.New()
		routes.RegisterAPI(r, routes.Controllers{
			Health:  controllers.NewHealthController(),
			Auth:    controllers.NewAuthController(),
			User:    controllers.NewUserController(nil),
			Menu:    controllers.NewMenuController(nil),
			Review:  controllers.NewReviewController(nil),
			Cart:    controllers.NewCartController(nil),
			Payment: controllers.NewPaymentController(nil, nil),
			Stats:   controllers.NewStatsController(nil),
		}, nil)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, route := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", route.Method, route.Path, route.Name)
		}
		return w.Flush()
	},
}
