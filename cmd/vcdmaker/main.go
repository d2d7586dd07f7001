// Command vcdmaker converts text logs into a VCD file.
//
//	vcdmaker -t us -o trace.vcd [-c counter] [-v] log.txt [more.txt...]
//
// Settings can also be given in a YAML file (--config), in VCDM_*
// environment variables or in a .env file in the current directory.
//
package main

import (
	"fmt"
	"os"

	"github.com/db47h/vcd"
	"github.com/db47h/vcd/internal/config"
	"github.com/db47h/vcd/internal/logger"
	"github.com/db47h/vcd/tracer"
	"github.com/db47h/vcd/txtlog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:           "vcdmaker [flags] log...",
		Short:         "Log file to VCD converter.",
		Version:       tracer.Version(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()
			return run(cfg, args, log)
		},
	}
	fs := cmd.Flags()
	fs.StringP("timebase", "t", string(vcd.Microseconds), "log timebase specification (s, ms, us, ns, ps, fs)")
	fs.StringP("output", "o", "out.vcd", "output VCD filename")
	fs.StringP("line_counter", "c", "", "line counter signal name")
	fs.String("date", "", "override the VCD $date section")
	fs.String("log_level", "info", "log level")
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose mode")
	fs.StringVar(&cfgPath, "config", "", "YAML configuration file")
	return cmd
}

func run(cfg config.Config, inputs []string, log *zap.Logger) error {
	unit, err := vcd.ParseTimeUnit(cfg.TimeUnit)
	if err != nil {
		return err
	}
	sources := vcd.NewSourceRegistry()
	db := vcd.NewDB(unit, sources)

	opts := []tracer.Option{tracer.WithLogger(log)}
	if cfg.Date != "" {
		opts = append(opts, tracer.WithDate(cfg.Date))
	}
	// fail early on unwritable output
	t, err := tracer.Create(cfg.Output, db, opts...)
	if err != nil {
		return err
	}
	defer t.Close()

	p := txtlog.Parser{
		DB:          db,
		Descriptors: vcd.NewDescriptorRegistry(sources),
		Log:         log,
		Counter:     cfg.LineCounter,
	}
	for _, in := range inputs {
		if _, err = p.ParseFile(in); err != nil {
			return err
		}
	}

	if err = t.Dump(); err != nil {
		return err
	}
	return errors.Wrap(t.Close(), cfg.Output)
}
