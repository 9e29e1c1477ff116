package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chefwho/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the items and chatlogs tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		db, err := storage.Open(cfg.BasicConfig.Database, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.Migrate(db, cfg.BasicConfig.Database); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", cfg.BasicConfig.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
