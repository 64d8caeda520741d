package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"agency-console/internal/gate"
)

var errNotSignedIn = errors.New(`not signed in, run "agency-console login" first`)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the signed-in role's dashboard as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, nil, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		user, ok := a.Session.Current()
		if !ok {
			return errNotSignedIn
		}
		if gate.StateFor(user.Role) == gate.Admin {
			return printJSON(cmd, a.Dashboard.Admin(cmd.Context()))
		}
		return printJSON(cmd, a.Dashboard.Staff(cmd.Context(), user))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
