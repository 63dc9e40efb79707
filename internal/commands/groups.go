package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage account groups",
	}

	var businessID, actor string
	bootstrap := &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed the system account groups of a business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			inserted, groups, err := a.services.Account.BootstrapGroups(cmd.Context(), businessID, actor)
			if err != nil {
				return fmt.Errorf("bootstrapping groups: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d system groups, %d groups total\n", inserted, len(groups))
			return nil
		},
	}
	bootstrap.Flags().StringVar(&businessID, "business", "", "business ID (required)")
	bootstrap.Flags().StringVar(&actor, "actor", "cli", "user ID recorded as creator")
	_ = bootstrap.MarkFlagRequired("business")
	cmd.AddCommand(bootstrap)

	return cmd
}
