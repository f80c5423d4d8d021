package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msomdec/wish-tracker/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var deleteEmail string

var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user with all their categories and wishes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(deleteEmail)
		if email == "" {
			return errors.New("--email is required")
		}

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		identity := service.NewIdentityService(db.Users(), db.Categories(), db.Wishes(), db)
		user, err := identity.CurrentUser(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("find user %q: %w", email, err)
		}
		if err := identity.DeleteAccount(cmd.Context(), user); err != nil {
			return fmt.Errorf("delete user %q: %w", email, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", email)
		return nil
	},
}

func init() {
	userDeleteCmd.Flags().StringVar(&deleteEmail, "email", "", "email of the account to delete")
	userCmd.AddCommand(userDeleteCmd)
}
