package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/forms"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update your profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			user, err := client.GetProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Profile"))
			fmt.Fprintf(out, "  Username: %s\n", user.Username)
			fmt.Fprintf(out, "  Email:    %s\n", user.Email)
			if user.Profile != nil && user.Profile.Phone != "" {
				fmt.Fprintf(out, "  Phone:    %s\n", user.Profile.Phone)
			}
			if !user.CreatedAt.IsZero() {
				fmt.Fprintf(out, "  Joined:   %s\n", user.CreatedAt.Format("January 2, 2006"))
			}
			return nil
		},
	}

	cmd.AddCommand(profileUpdateCmd())

	return cmd
}

func profileUpdateCmd() *cobra.Command {
	var in forms.ProfileInput

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Long:  `Update profile fields. Only the flags you pass are sent; everything else keeps its current value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			if in.Username == "" && in.Email == "" && in.Phone == "" {
				return fmt.Errorf("nothing to update: pass at least one of --username, --email, --phone")
			}

			if errs := in.Validate(); !errs.Valid() {
				return reportFormErrors(cmd, errs)
			}

			user, err := client.UpdateProfile(cmd.Context(), in.Update())
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}

			// The server's user record is authoritative; adopt it.
			store.SetUser(user)

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Profile updated successfully!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "new username")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "new email")
	cmd.Flags().StringVarP(&in.Phone, "phone", "p", "", "new phone number")

	return cmd
}
