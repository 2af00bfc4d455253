package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/slotwatch/internal/application/usecases"
	"github.com/example/slotwatch/internal/infrastructure/notify"
)

func NewTestNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a sample report through every configured notifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			uc := usecases.TestNotify{Notifiers: newNotifiers(cfg)}
			outcomes, err := uc.Execute(ctx, notify.Sample(cfg.Criteria.Window))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, o := range outcomes {
				switch {
				case o.Skipped:
					fmt.Fprintf(w, "%s: skipped (not configured)\n", o.Notifier)
				case o.Err != nil:
					fmt.Fprintf(w, "%s: failed: %v\n", o.Notifier, o.Err)
				default:
					fmt.Fprintf(w, "%s: sent\n", o.Notifier)
				}
			}
			return nil
		},
	}
}
