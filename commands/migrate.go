package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/eventpilot/backend/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Migrate flags
	checkOnly bool
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	Long: `Run AutoMigrate for every model and exit.

Examples:
  eventpilot migrate           # Apply schema changes
  eventpilot migrate --check   # Report column drift without changing anything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		db, err := openDatabase(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer db.Close()

		if checkOnly {
			report, err := db.ColumnDrift()
			if err != nil {
				return err
			}
			if !printDrift(report) {
				return fmt.Errorf("schema drift detected, run migrate")
			}
			return nil
		}

		if err := db.Migrate(); err != nil {
			return err
		}
		log.Info().Msg("database migrated")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only report differences between models and tables")
}

// printDrift writes one row per table and reports whether all were clean.
func printDrift(report []database.TableDrift) bool {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSTATUS\tMISSING\tUNMAPPED")

	clean := true
	for _, table := range report {
		status := "ok"
		switch {
		case table.TableMissing:
			status = "missing table"
			clean = false
		case !table.Clean():
			status = "drift"
			clean = false
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", table.Table, status,
			strings.Join(table.Missing, ","), strings.Join(table.Unmapped, ","))
	}
	_ = w.Flush()
	return clean
}
