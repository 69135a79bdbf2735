package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email-or-name>",
	Short: "Sign in as a storefront user",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		u, err := a.store.Login(ctx, args[0], loginPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Name, u.Role)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and empty the cart",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
		if err := a.store.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		u := a.store.Session()
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), struct {
				User      interface{} `json:"user"`
				Dashboard bool        `json:"dashboard"`
			}{u, a.checker.CanAccessDashboard(u)})
		}
		if u.IsGuest() {
			fmt.Fprintln(cmd.OutOrStdout(), "Guest")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\npermissions: %s\n",
			u.Name, u.Email, u.Role, permissionList(a.store.Permissions()))
		return nil
	}),
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password; omitted means no check")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
