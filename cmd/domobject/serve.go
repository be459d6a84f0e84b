package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/zdunecki/domobject/api"
	v1 "github.com/zdunecki/domobject/api/v1"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the snapshot http api",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, ps, err := newService(a.cfg, snapshot.WithSchemes(remoteSchemes...))
			if err != nil {
				return err
			}
			if ps != nil {
				defer ps.Close()
			}

			apiV1, err := v1.New(svc, v1.WithTimeout(a.cfg.Timeout))
			if err != nil {
				return err
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID, middleware.Recoverer)

			return apiV1.Serve(ctx, a.cfg.API.Addr, api.New(r))
		},
	}

	cmd.Flags().String("addr", ":8080", "http listen address")
	a.v.BindPFlag("api.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
