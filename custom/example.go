package custom

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"catalog.GO/api"
	"catalog.GO/cmd"
	"catalog.GO/cron"
	gqlregistry "catalog.GO/graphql/registry"
)

// Example of every extension point. Registrations run via init() when the
// package is imported by the entrypoints.
func init() {
	// GraphQL extension: extension(name: "ping")
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "catalog"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from the catalog CLI")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "catalog"})
	})
}
