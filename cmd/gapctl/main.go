// cmd/gapctl/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unclebandit/gapgrabber-web/internal/backend"
	"github.com/unclebandit/gapgrabber-web/internal/config"
	"github.com/unclebandit/gapgrabber-web/internal/logging"
	"github.com/unclebandit/gapgrabber-web/internal/repository"
	"github.com/unclebandit/gapgrabber-web/internal/service"
)

// cli holds what every command needs. newAdapter is swapped in tests.
type cli struct {
	apiURL     string
	cfg        *config.Config
	logger     *zap.Logger
	now        func() time.Time
	newAdapter func(apiURL string) service.Adapter
}

func main() {
	_ = config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// Commands print to stdout; only warnings go to the log.
	logger, err := logging.New(cfg.ServiceName+"-cli", cfg.Env, "warn")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	c := &cli{cfg: cfg, logger: logger, now: time.Now}
	c.newAdapter = c.backendAdapter

	if err := newRootCmd(c).Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) backendAdapter(apiURL string) service.Adapter {
	client := backend.New(apiURL, c.cfg.BackendTimeout, c.logger)
	return &service.GapService{
		AppointmentRepo: &repository.AppointmentRepository{Client: client},
		CampaignRepo:    &repository.CampaignRepository{Client: client},
		MessageRepo:     &repository.MessageRepository{Client: client},
		Logger:          c.logger,
		Location:        c.cfg.Location(),
		Now:             c.now,
	}
}

func (c *cli) adapter() service.Adapter {
	url := c.apiURL
	if url == "" {
		url = c.cfg.APIURL
	}
	return c.newAdapter(url)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "gapctl",
		Short: "Terminal client for GapGrabber",
		Long: `gapctl lists slots and gap-filling workflows, reads customer
conversations and launches a fill workflow for a slot.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "backend base URL (default: API_URL)")

	root.AddCommand(
		newSlotsCmd(c),
		newWorkflowsCmd(c),
		newWorkflowCmd(c),
		newMessagesCmd(c),
		newFillCmd(c),
	)
	return root
}
