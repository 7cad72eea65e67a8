package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/log"
	"github.com/yorozuya-cybersecurity/yorosec-export/internal/schema"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Store a JSON scan result under a scan identifier",
		Example: "yoro import --sid a1b2c3 --from ./scan.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			sid := viper.GetString("import.sid")
			if sid == "" {
				return errors.New("please provide --sid")
			}
			from := viper.GetString("import.from")
			if from == "" {
				return errors.New("please provide --from pointing to a JSON scan result")
			}

			data, err := os.ReadFile(from)
			if err != nil {
				return fmt.Errorf("read %s: %w", from, err)
			}
			rec, err := schema.ParseRecord(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", from, err)
			}

			st, closeStore, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := st.Save(cmd.Context(), sid, data); err != nil {
				return err
			}
			log.Infof("stored scan %s (%d findings)", sid, len(rec.Findings()))
			return nil
		},
	}

	cmd.Flags().String("sid", "", "Scan identifier to store the result under")
	cmd.Flags().String("from", "", "JSON file holding the scan result")
	_ = viper.BindPFlag("import.sid", cmd.Flags().Lookup("sid"))
	_ = viper.BindPFlag("import.from", cmd.Flags().Lookup("from"))

	return cmd
}
