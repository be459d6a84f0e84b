package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zdunecki/domobject/api/v1/objects"
	"github.com/zdunecki/domobject/api/v1/sdk"
	"github.com/zdunecki/domobject/pkg/snapshot"
)

func (a *app) snapshotCmd() *cobra.Command {
	var (
		out    string
		indent bool
		apiURL string
	)

	cmd := &cobra.Command{
		Use:   "snapshot TARGET",
		Short: "Take a snapshot of a url or local html file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
				defer cancel()
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if apiURL != "" {
				return a.remoteSnapshot(ctx, w, apiURL, args[0])
			}

			svc, ps, err := newService(a.cfg)
			if err != nil {
				return err
			}
			if ps != nil {
				defer ps.Close()
			}

			result, err := svc.Take(ctx, snapshot.Request{URL: args[0]})
			if err != nil {
				return err
			}

			return snapshot.Encode(w, result, indent)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the snapshot to a file instead of stdout")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the json output")
	cmd.Flags().StringVar(&apiURL, "api", "", "take the snapshot on a domobject server")

	return cmd
}

func (a *app) remoteSnapshot(ctx context.Context, w io.Writer, apiURL, target string) error {
	client, err := sdk.NewWithOpts(sdk.WithHTTPAddr(apiURL))
	if err != nil {
		return err
	}

	raw, err := client.Snapshot(ctx, &objects.RequestSnapshot{
		URL:      target,
		Backend:  a.cfg.Backend,
		MaxDepth: a.cfg.MaxDepth,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(raw)
	return err
}
