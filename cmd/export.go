package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/conference-cli/internal/model"
	"github.com/sells-group/conference-cli/internal/reconcile"
)

var (
	exportRun    string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored profiles as json, yaml, or xlsx",
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

		runID := exportRun
		if runID == "" {
			runs, err := st.ListRuns(ctx, 1)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return eris.New("no stored runs to export")
			}
			runID = runs[0].ID
		}

		profiles, err := st.ListProfiles(ctx, runID)
		if err != nil {
			return err
		}

		switch exportFormat {
		case "json", "":
			data, err := reconcile.MarshalJSON(profiles)
			if err != nil {
				return err
			}
			return writeExport(cmd, data)
		case "yaml":
			data, err := yaml.Marshal(reconcile.BuildExport(profiles))
			if err != nil {
				return eris.Wrap(err, "marshal yaml")
			}
			return writeExport(cmd, data)
		case "xlsx":
			if exportOut == "" {
				return eris.New("xlsx export requires --out")
			}
			return writeXLSX(profiles, exportOut)
		default:
			return eris.Errorf("unknown export format %q", exportFormat)
		}
	},
}

func writeExport(cmd *cobra.Command, data []byte) error {
	if exportOut != "" {
		return eris.Wrapf(os.WriteFile(exportOut, data, 0o644), "write %s", exportOut)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// profileRows flattens profiles into spreadsheet rows, header first.
func profileRows(profiles []model.CompanyProfile) [][]string {
	rows := [][]string{{"Company", "Roles", "Team Size", "Confidence", "Sources", "Flags", "Contacts"}}

	for _, p := range profiles {
		roles := make([]string, 0, len(p.Roles))
		for _, r := range p.Roles {
			roles = append(roles, string(r))
		}

		contacts := make([]string, 0, len(p.Contacts))
		for _, c := range p.Contacts {
			if c.Title != "" {
				contacts = append(contacts, c.Name+" ("+c.Title+")")
			} else {
				contacts = append(contacts, c.Name)
			}
		}

		teamSize := ""
		if p.TeamSize > 0 {
			teamSize = fmt.Sprintf("%d", p.TeamSize)
		}

		rows = append(rows, []string{
			p.Company,
			strings.Join(roles, ", "),
			teamSize,
			fmt.Sprintf("%.2f", p.Confidence),
			strings.Join(p.SourceDocs, ", "),
			strings.Join(p.Flags, ", "),
			strings.Join(contacts, "; "),
		})
	}
	return rows
}

func writeXLSX(profiles []model.CompanyProfile, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Profiles")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	for _, cells := range profileRows(profiles) {
		row := sheet.AddRow()
		for _, value := range cells {
			row.AddCell().SetString(value)
		}
	}

	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func init() {
	exportCmd.Flags().StringVar(&exportRun, "run", "", "run ID to export (default: most recent)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json, yaml, or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (stdout for json/yaml when omitted)")
	rootCmd.AddCommand(exportCmd)
}
