package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chefwho/internal/redis"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print chat log events published on redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Redis.Enabled {
			return errors.New("redis is not enabled")
		}
		client, err := redis.NewRedisClient(cfg)
		if err != nil {
			return fmt.Errorf("create redis client: %w", err)
		}
		defer client.Close()

		sub, err := client.Subscribe(ctx, cfg.Redis.Channel)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", cfg.Redis.Channel, err)
		}
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-msgs:
				if !ok {
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg.Payload)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
