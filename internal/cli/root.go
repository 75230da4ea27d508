package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/notary/internal/app"
	"github.com/MrSnakeDoc/notary/internal/config"
	"github.com/MrSnakeDoc/notary/internal/controller"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/store"
	"github.com/MrSnakeDoc/notary/internal/view"
)

// NewRootCmd builds the notary command tree. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "notary",
		Short:        "Keep highlighted web-page text as cards",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Run the HTTP service (default)
  notary

  # Inspect or manage the stored cards
  notary cards list
  notary cards export --format json > cards.json
  notary cards import cards.yaml
  notary cards clear
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.AddCommand(
		newServeCmd(),
		newCardsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// session is a short-lived store + controller for one CLI command.
type session struct {
	cfg        *config.Config
	logger     logger.Logger
	slot       store.Slot
	cards      *store.CardStore
	controller *controller.Controller
}

func openSession(ctx context.Context) (*session, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	slot, err := app.OpenSlot(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s card store: %w", cfg.StoreBackend, err)
	}

	cards := store.NewCardStore(slot, log)
	ctrl := controller.New(cards, view.NewProjection(), controller.Options{
		ReaddOnDeselect: cfg.ReaddOnDeselect,
	}, log)

	return &session{cfg: cfg, logger: log, slot: slot, cards: cards, controller: ctrl}, nil
}

func (s *session) Close() error {
	_ = s.logger.Sync()
	return s.slot.Close()
}
