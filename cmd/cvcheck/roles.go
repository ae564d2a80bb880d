package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/cv-feedback/internal/app"
)

func newRolesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the roles CVs can be scored against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			an, err := app.BuildAnalyzer(c.cfg)
			if err != nil {
				return err
			}
			reg := an.Registry()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tKEYWORDS\tALIASES")
			for _, p := range reg.Roles() {
				id := p.ID
				if id == reg.DefaultRoleID() {
					id += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%v\n", id, p.Label, len(p.Keywords), p.Aliases)
			}
			return tw.Flush()
		},
	}
}
