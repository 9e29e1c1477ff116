package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chefwho/internal/service/chef"
)

var (
	suggestUserID  string
	suggestMinutes int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask for a suggestion without starting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if suggestUserID == "" {
			return fmt.Errorf("--user-id is required")
		}
		a, _, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		req := chef.Request{UserID: suggestUserID}
		if cmd.Flags().Changed("minutes") {
			req.AvailableMinutes = &suggestMinutes
		}
		s, err := a.Chef.Suggest(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := map[string]any{
			"user_id":      s.UserID,
			"meal_period":  s.MealPeriod,
			"chefwho_says": s.Message,
		}
		if s.Found {
			out["name_used"] = s.Item.Name
			out["days_left"] = s.Item.DaysLeft
			out["status"] = s.Item.Status
			out["quantity"] = s.Item.Quantity()
			out["storage"] = s.Item.Storage
			out["updated_at"] = s.Item.UpdatedAt
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestUserID, "user-id", "", "inventory owner")
	suggestCmd.Flags().IntVar(&suggestMinutes, "minutes", 0, "available cooking minutes")
	rootCmd.AddCommand(suggestCmd)
}
