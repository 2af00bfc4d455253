package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/slotwatch/internal/application/usecases"
	"github.com/example/slotwatch/internal/infrastructure/config"
	"github.com/example/slotwatch/internal/infrastructure/logging"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

// NewRoot returns the slotwatch command. Run without a subcommand it performs one check.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "slotwatch",
		Short:         "Check driving test availability once and alert on matching slots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCheck(cmd.Context(), cmd.OutOrStdout())
			return nil
		},
	}
	cmd.AddCommand(NewPingCmd())
	cmd.AddCommand(NewTestNotifyCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// runCheck logs every failure instead of returning it so the process always exits 0.
func runCheck(ctx context.Context, w io.Writer) {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(w, "", "info").Error("invalid configuration", "error", err)
		return
	}
	log := newLogger(w, cfg).With("run_id", uuid.NewString())

	uc := usecases.CheckSlots{
		Source:    newSource(cfg),
		Notifiers: newNotifiers(cfg),
		Locations: cfg.Locations,
		Criteria:  cfg.Criteria,
		Delay:     cfg.RequestDelay,
		Log:       log,
	}
	uc.Execute(ctx)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return logging.New(w, cfg.Secrets.Env, cfg.Secrets.LogLevel)
}
