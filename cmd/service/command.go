package service

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sproutplan/sproutplan/app/core"
	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/logic/v1/process"
)

type Options struct {
	ConfigPath string
	EnvFile    string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
	flagSet.StringVarP(&o.EnvFile, "env", "e", "", "load environment from file before reading config")
}

func (o *Options) loadEnv() {
	if o.EnvFile != "" {
		// Missing env file is fatal only when one was asked for.
		if err := godotenv.Load(o.EnvFile); err != nil {
			panic(err)
		}
		return
	}
	godotenv.Load()
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "activity plan service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	opts.loadEnv()
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	process.NewProcess(app).Start()
	serve(app)

	return nil
}

// NewSeedCommand populates an empty database with the starter taxonomy
// and the bootstrap admin, then exits.
func NewSeedCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "seed taxonomy and admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.loadEnv()
			app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
			return v1.NewSeedLogic(context.Background(), app).Seed()
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}
