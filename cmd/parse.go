package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/conference-cli/internal/docload"
	"github.com/sells-group/conference-cli/internal/pipeline"
	"github.com/sells-group/conference-cli/internal/reconcile"
)

var (
	parseOut  string
	parseSave bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdf>...",
	Short: "Parse conference documents into canonical company profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p := pipeline.New(docload.NewPDFLoader(), pipelineConfig())
		result, err := p.Run(ctx, args)
		if err != nil {
			return eris.Wrap(err, "parse")
		}

		if parseSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}

			run, err := st.CreateRun(ctx, args)
			if err != nil {
				return eris.Wrap(err, "create run")
			}
			if err := st.SaveProfiles(ctx, run.ID, result.Profiles); err != nil {
				return eris.Wrap(err, "save profiles")
			}
			if err := st.CompleteRun(ctx, run.ID, result.Status(), len(result.Profiles), result.RecordCount); err != nil {
				return eris.Wrap(err, "complete run")
			}
			zap.L().Info("parse: run saved", zap.String("run_id", run.ID))
		}

		data, err := reconcile.MarshalJSON(result.Profiles)
		if err != nil {
			return err
		}

		if parseOut != "" {
			if err := os.WriteFile(parseOut, data, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", parseOut)
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		for _, sk := range result.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", sk.Path, sk.Reason)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d documents, %d records, %d companies\n",
			result.Documents, result.RecordCount, len(result.Profiles))

		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseOut, "out", "", "write profiles JSON to this path instead of stdout")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "persist the run and profiles to the store")
	rootCmd.AddCommand(parseCmd)
}
