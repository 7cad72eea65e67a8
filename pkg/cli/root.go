package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/yorosec-export/internal/log"
	"github.com/yorozuya-cybersecurity/yorosec-export/internal/store"
)

var (
	Version = "0.0.1"
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "yoro",
		Short: "Export scan results to the console, JSON, XML or CSV",
		Long:  "Yorozuya result exporter: render stored scan results as a console table or append them to JSON, XML and CSV result files.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLogger(&log.DefaultLogger{Verbose: viper.GetBool("verbose")})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "./reports", "Output directory")
	rootCmd.PersistentFlags().String("data-dir", "./data", "Directory holding stored scan results (<sid>_data)")
	rootCmd.PersistentFlags().String("store", "file", "Scan result store: file or sqlite")
	rootCmd.PersistentFlags().String("db", "./data/scans.db", "SQLite database path (store=sqlite)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Environment variable support (YORO_OUTPUT, YORO_DATA_DIR, etc.)
	viper.SetEnvPrefix("YORO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println(err)
		os.Exit(1)
	}
}

// openStore builds the configured scan result store. The returned func
// releases it.
func openStore(ctx context.Context) (store.Store, func(), error) {
	switch kind := strings.ToLower(viper.GetString("store")); kind {
	case "", "file":
		return store.NewFileStore(afero.NewOsFs(), viper.GetString("data_dir")), func() {}, nil
	case "sqlite":
		path := viper.GetString("db")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create db dir: %w", err)
		}
		s, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want file or sqlite)", kind)
	}
}
