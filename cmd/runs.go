package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored parse runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-36s  %-9s  %8s  %7s  %-20s  %s\n", "ID", "STATUS", "PROFILES", "RECORDS", "CREATED", "DOCUMENTS")
		for _, r := range runs {
			fmt.Fprintf(w, "%-36s  %-9s  %8d  %7d  %-20s  %s\n",
				r.ID, r.Status, r.ProfileCount, r.RecordCount,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				strings.Join(r.Documents, ", "),
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
