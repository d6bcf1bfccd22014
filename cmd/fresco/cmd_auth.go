package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var password string

var loginCmd = &cobra.Command{
	Use:   "login USERNAME",
	Short: "Sign in and keep the session for later commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProvider(); err != nil {
			return err
		}
		pw, err := readPassword(cmd)
		if err != nil {
			return err
		}
		user, err := app.users.SignIn(cmd.Context(), args[0], pw)
		if err != nil {
			return fmt.Errorf("failed to sign in: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Username)

		app.store.FetchCart(cmd.Context())
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup USERNAME EMAIL",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProvider(); err != nil {
			return err
		}
		pw, err := readPassword(cmd)
		if err != nil {
			return err
		}
		user, err := app.users.SignUp(cmd.Context(), args[0], args[1], pw)
		if err != nil {
			return fmt.Errorf("failed to sign up: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.users.SignOut(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := app.users.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (session expires %s)\n",
			user.Username, user.Email, user.ExpiresAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&password, "password", "p", "", "Password (read from stdin when omitted)")
	}
}

func requireProvider() error {
	if app.provider == nil {
		return fmt.Errorf("COGNITO_CLIENT_ID must be set to sign in")
	}
	return nil
}

func readPassword(cmd *cobra.Command) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
