package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"agency-console/internal/gate"
	"agency-console/internal/models"
	"agency-console/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in against the role's login endpoint. The session is persisted to the
configured backend and shared with "serve". The password is read from
AGENCY_PASSWORD or, when unset, from stdin.`,
	Example: `  agency-console login --email admin@agency.in --role admin`,
	Args:    cobra.NoArgs,
	RunE:    runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.Auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		user, ok := a.Session.Current()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		out := map[string]any{
			"user":  user,
			"shell": gate.ShellFor(gate.StateFor(user.Role)).Name,
		}
		if exp, ok := session.TokenExpiry(a.Session.Token()); ok {
			out["expiresAt"] = exp.Format(time.RFC3339)
		}
		return printJSON(cmd, out)
	},
}

var (
	loginEmail string
	loginRole  string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginRole, "role", string(models.RoleAdmin), "admin, employee or intern")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	password := os.Getenv("AGENCY_PASSWORD")
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	a, err := buildApp(cmd.Context(), cfg, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.Auth.Login(cmd.Context(), &models.LoginRequest{
		Email:    loginEmail,
		Password: password,
		Role:     models.Role(loginRole),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
