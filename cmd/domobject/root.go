package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zdunecki/domobject/internal/config"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "domobject",
		Short:         "Serialize rendered DOM trees into JSON object graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./domobject.yaml)")
	flags.String("backend", "html", "backend used to open pages: html, rod or chromedp")
	flags.String("remote", "", "control url of a running browser")
	flags.Bool("headless", true, "launch the browser headless")
	flags.Int("max-depth", 0, "maximum element depth, 0 for unbounded")
	flags.Duration("timeout", 0, "timeout of one snapshot")
	flags.String("log-level", "info", "log level")

	a.v.BindPFlag("backend", flags.Lookup("backend"))
	a.v.BindPFlag("browser.remote", flags.Lookup("remote"))
	a.v.BindPFlag("browser.headless", flags.Lookup("headless"))
	a.v.BindPFlag("max_depth", flags.Lookup("max-depth"))
	a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		a.snapshotCmd(),
		a.serveCmd(),
		a.workerCmd(),
	)

	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	a.cfg = cfg

	return nil
}
