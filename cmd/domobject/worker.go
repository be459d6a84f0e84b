package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

var errNoPubSub = errors.New("worker needs a pubsub driver")

func (a *app) workerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Take snapshots for requests read from the pubsub request topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, ps, err := newService(a.cfg, snapshot.WithSchemes(remoteSchemes...))
			if err != nil {
				return err
			}
			if ps == nil {
				return errNoPubSub
			}
			defer ps.Close()

			return svc.Serve(ctx, ps, a.cfg.PubSub.RequestTopic, a.cfg.Timeout)
		},
	}

	cmd.Flags().String("pubsub", "", "pubsub driver: nats or kafka")
	cmd.Flags().String("pubsub-url", "", "nats server url")
	cmd.Flags().StringSlice("brokers", nil, "kafka brokers")

	a.v.BindPFlag("pubsub.driver", cmd.Flags().Lookup("pubsub"))
	a.v.BindPFlag("pubsub.url", cmd.Flags().Lookup("pubsub-url"))
	a.v.BindPFlag("pubsub.brokers", cmd.Flags().Lookup("brokers"))

	return cmd
}
