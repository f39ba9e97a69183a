// 2026 Craig Tomkow

package main

import "github.com/spf13/cobra"

func newConfigureCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Configure the project in the working directory for the local environment",
		Long: `Configure the project in the working directory for the local environment.

Laravel: creates the database and sets APP_URL and the DB_* keys in .env, seeding it
from .env.example when missing. Other lines of .env are left untouched.
Magento 2: creates the database and sets the deployment config and base urls.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configured, err := c.app.devtools.Configure(cmd.Context())
			if err != nil {
				return err
			}
			if !configured {
				info("No configuration settings found.")
				return nil
			}
			info("Project configured")
			return nil
		},
	}
}
