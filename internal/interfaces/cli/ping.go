package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/slotwatch/internal/application/usecases"
)

func NewPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Fetch every configured location once and print raw slot counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(len(cfg.Locations))*cfg.FetchTimeout+10*time.Second)
			defer cancel()

			src := newSource(cfg)
			uc := usecases.PingProvider{Source: src, Locations: cfg.Locations}
			results, err := uc.Execute(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(w, "%s (%s): error: %v\n", r.Location.Name, r.Location.ID, r.Err)
					continue
				}
				fmt.Fprintf(w, "%s (%s): ok source=%s reported_location=%q records=%d available=%d\n",
					r.Location.Name, r.Location.ID, src.Name(), r.ReportedLocation, r.Records, r.Available)
			}
			return nil
		},
	}
}
