package cli

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export a stored scan result to the console or a results file",
		Example: "yoro export --sid a1b2c3 --target https://github.com/org/repo --format json --file results.json",
		RunE:    runExport,
	}

	cmd.Flags().String("sid", "", "Scan identifier of the stored result")
	cmd.Flags().String("target", "", "Override the target recorded with the scan")
	cmd.Flags().String("format", "", "Output format: empty for a console table, or json, xml, csv")
	cmd.Flags().String("file", "", "Destination file for json, xml and csv (relative to --output)")

	_ = viper.BindPFlag("export.sid", cmd.Flags().Lookup("sid"))
	_ = viper.BindPFlag("export.target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.file", cmd.Flags().Lookup("file"))
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	sid := viper.GetString("export.sid")
	if sid == "" {
		return errors.New("please provide --sid naming the scan to export")
	}

	st, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	exporter := export.New(st, afero.NewOsFs(), export.Config{
		OutputDir: viper.GetString("output"),
	})
	return exporter.Export(cmd.Context(), export.Request{
		ScanID: sid,
		Target: viper.GetString("export.target"),
		Format: viper.GetString("export.format"),
		Path:   viper.GetString("export.file"),
	})
}
