package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chefwho/internal/models"
)

var addItem struct {
	userID   string
	name     string
	daysLeft int
	status   string
	qty      float64
	unit     string
	storage  string
}

var addItemCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Insert an inventory item",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addItem.userID == "" || addItem.name == "" {
			return fmt.Errorf("--user-id and --name are required")
		}
		a, _, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		now := time.Now().UTC()
		item := models.InventoryItem{
			UserID:    addItem.userID,
			Name:      addItem.name,
			Status:    addItem.status,
			QtyUnit:   addItem.unit,
			Storage:   addItem.storage,
			UpdatedAt: &now,
		}
		if cmd.Flags().Changed("days-left") {
			item.DaysLeft = &addItem.daysLeft
		}
		if cmd.Flags().Changed("qty") {
			item.QtyValue = &addItem.qty
		}
		if err := a.Inventory.AddItem(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s for %s\n", item.Name, item.UserID)
		return nil
	},
}

func init() {
	f := addItemCmd.Flags()
	f.StringVar(&addItem.userID, "user-id", "", "inventory owner")
	f.StringVar(&addItem.name, "name", "", "item name")
	f.IntVar(&addItem.daysLeft, "days-left", 0, "days until the item spoils")
	f.StringVar(&addItem.status, "status", "", "freshness label")
	f.Float64Var(&addItem.qty, "qty", 0, "quantity")
	f.StringVar(&addItem.unit, "unit", "", "quantity unit")
	f.StringVar(&addItem.storage, "storage", "", "storage location")
	rootCmd.AddCommand(addItemCmd)
}
