package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the collaborator JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, session, err := loadSession(*configPath)
			if err != nil {
				return err
			}

			opts := []server.Option{}
			if cfg.Data.CashAccountsFile != "" {
				accounts, table, err := loadCash(cfg, time.Now())
				if err != nil {
					return err
				}
				opts = append(opts, server.WithCash(accounts, table))
			}
			ar, ap, err := loadAging(cfg)
			if err != nil {
				return err
			}
			opts = append(opts, server.WithAging(ar, ap))
			if cfg.Data.JobBudgetsFile != "" {
				metrics, err := loadJobs(cfg)
				if err != nil {
					return err
				}
				opts = append(opts, server.WithJobs(metrics, cfg.Jobs.ExcludedManagers))
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if addr == "" {
				return fmt.Errorf("no listen address; set server.addr or pass --addr")
			}
			return server.New(session, opts...).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")

	return cmd
}
