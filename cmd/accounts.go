package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage stored account credentials",
	}
	cmd.AddCommand(newAccountsListCmd(), newAccountsRemoveCmd())
	return cmd
}

func newAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				accounts, err := a.manager.ListAccounts()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(accounts) == 0 {
					_, err := fmt.Fprintln(out, "No accounts configured. Run 'gworkspace auth url' to add one.")
					return err
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "EMAIL\tAUTHENTICATED")
				for _, acc := range accounts {
					fmt.Fprintf(tw, "%s\t%t\n", acc.Email, acc.Authenticated)
				}
				return tw.Flush()
			})
		},
	}
}

func newAccountsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Delete the stored credential of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				ctx := tools.WithTransport(cmd.Context(), tools.TransportCLI)
				res, err := a.registry.Invoke(ctx, "remove_workspace_account", map[string]any{"email": args[0]})
				if err != nil {
					return err
				}
				if res.Failed() {
					return res.Err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Render())
				return err
			})
		},
	}
}
