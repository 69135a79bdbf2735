package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
	"github.com/spf13/cobra"
)

var (
	usersOperatorsOnly bool

	userName     string
	userEmail    string
	userPassword string
	userRole     string
	userAvatar   string
	userPhone    string

	grantPublications bool
	grantBanners      bool
	grantCategories   bool
	grantChats        bool
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Administer storefront users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		if err := a.require(auth.CapManageUsers); err != nil {
			return err
		}
		users := a.store.Snapshot().Users
		if usersOperatorsOnly {
			users = user.Operators(users)
		}
		return printUsers(cmd.OutOrStdout(), users)
	}),
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an operator",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
		if err := a.require(auth.CapManageUsers); err != nil {
			return err
		}
		u, err := a.store.AddUser(ctx, user.NewUser{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			Role:     user.Role(userRole),
			Avatar:   userAvatar,
			Phone:    userPhone,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) as %s\n", u.Name, u.ID, u.Role)
		return nil
	}),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a user; anyone may edit their own profile",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		self := a.store.Session()
		if self.ID != args[0] || self.IsGuest() {
			if err := a.require(auth.CapManageUsers); err != nil {
				return err
			}
		}

		patch := user.Patch{}
		flags := cmd.Flags()
		if flags.Changed("name") {
			patch.Name = &userName
		}
		if flags.Changed("email") {
			patch.Email = &userEmail
		}
		if flags.Changed("password") {
			patch.Password = &userPassword
		}
		if flags.Changed("avatar") {
			patch.Avatar = &userAvatar
		}
		if flags.Changed("phone") {
			patch.Phone = &userPhone
		}

		// role and permissions are administrative
		adminFlags := flags.Changed("role") || flags.Changed("publications") || flags.Changed("banners") ||
			flags.Changed("categories") || flags.Changed("chats")
		if adminFlags {
			if err := a.require(auth.CapManageUsers); err != nil {
				return err
			}
			if err := applyAdminFlags(cmd, a, args[0], &patch); err != nil {
				return err
			}
		}

		if patch.IsEmpty() {
			return internal.NewValidationError("nothing to update", internal.ErrCodeValidationFailed)
		}
		if err := a.store.UpdateUser(ctx, args[0], patch); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
		return nil
	}),
}

func applyAdminFlags(cmd *cobra.Command, a *app, id string, patch *user.Patch) error {
	flags := cmd.Flags()
	if flags.Changed("role") {
		role := user.Role(userRole)
		patch.Role = &role
	}

	users := a.store.Snapshot().Users
	idx := user.FindByID(users, id)
	if idx < 0 {
		return internal.ErrUserNotFound.WithDetails(map[string]string{"id": id})
	}
	perms := users[idx].Permissions
	changed := false
	if flags.Changed("publications") {
		perms.CanManagePublications, changed = grantPublications, true
	}
	if flags.Changed("banners") {
		perms.CanManageBanners, changed = grantBanners, true
	}
	if flags.Changed("categories") {
		perms.CanManageCategories, changed = grantCategories, true
	}
	if flags.Changed("chats") {
		perms.CanManageChats, changed = grantChats, true
	}
	if changed {
		patch.Permissions = &perms
	}
	return nil
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a user",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManageUsers); err != nil {
			return err
		}
		if args[0] == a.store.Session().ID {
			return internal.NewConflictError("you cannot delete the account you are signed in with", internal.ErrCodeValidationFailed)
		}
		if err := a.store.DeleteUser(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	}),
}

func init() {
	usersListCmd.Flags().BoolVar(&usersOperatorsOnly, "operators", false, "only admins and superadmins")

	for _, c := range []*cobra.Command{usersAddCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "display name")
		c.Flags().StringVar(&userEmail, "email", "", "email address")
		c.Flags().StringVar(&userPassword, "password", "", "password")
		c.Flags().StringVar(&userRole, "role", "", "user, admin or superadmin")
		c.Flags().StringVar(&userAvatar, "avatar", "", "avatar url")
		c.Flags().StringVar(&userPhone, "phone", "", "phone number")
	}
	usersUpdateCmd.Flags().BoolVar(&grantPublications, "publications", false, "may manage publications")
	usersUpdateCmd.Flags().BoolVar(&grantBanners, "banners", false, "may manage banners")
	usersUpdateCmd.Flags().BoolVar(&grantCategories, "categories", false, "may manage categories")
	usersUpdateCmd.Flags().BoolVar(&grantChats, "chats", false, "may manage chats")

	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
