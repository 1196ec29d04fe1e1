package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if !d.Session.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		if err := d.Session.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}

		fmt.Println("Signed out.")
		return nil
	},
}
