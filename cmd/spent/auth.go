package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/forms"
)

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the expense tracker",
		Long:  `Authenticate against the backend and persist the session for later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			if email == "" {
				email, err = prompter.Line("Email")
				if err != nil {
					return err
				}
			}

			password, err := prompter.Password("Password")
			if err != nil {
				return err
			}

			result := store.Login(cmd.Context(), newClient(store), email, password)
			if !result.Success {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError(result.Message))
				return fmt.Errorf("login failed")
			}

			user := store.User()
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged in as %s <%s>", user.Username, user.Email)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")

	return cmd
}

func registerCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			if username == "" {
				username, err = prompter.Line("Username")
				if err != nil {
					return err
				}
			}
			if email == "" {
				email, err = prompter.Line("Email")
				if err != nil {
					return err
				}
			}

			input := forms.ProfileInput{Username: username, Email: email}
			if errs := input.Validate(); !errs.Valid() {
				for _, msg := range errs {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError(msg))
				}
				return fmt.Errorf("invalid registration details")
			}

			password, err := prompter.Password("Password")
			if err != nil {
				return err
			}

			result := store.Register(cmd.Context(), newClient(store), api.RegisterInput{
				Username: username,
				Email:    email,
				Password: password,
			})
			if !result.Success {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError(result.Message))
				return fmt.Errorf("registration failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Welcome, %s! You are now logged in.", store.User().Username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}

			if !store.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Already logged out."))
				return nil
			}

			// Best effort on the backend side; local state is cleared either way.
			store.Logout(cmd.Context(), newClient(store))
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out."))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSession()
			if err != nil {
				return err
			}

			user := store.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Not logged in."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}
