package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"Inventario/internal/config"
)

const service = "inventario"

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          service,
		Short:        "Inventory demo serving HTML pages and HTMX fragments",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	bindServeFlags(v, serve.Flags())

	root.AddCommand(serve)
	return root
}

func bindServeFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String("config", "", "optional YAML config file")
	flags.String("port", "8080", "listen port")
	flags.String("store-backend", config.BackendMemory, "memory, postgres or redis")
	flags.String("templates-dir", "", "load templates from this directory instead of the embedded copy")

	_ = v.BindPFlag("config_file", flags.Lookup("config"))
	_ = v.BindEnv("config_file", "CONFIG_FILE")
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("store_backend", flags.Lookup("store-backend"))
	_ = v.BindPFlag("templates_dir", flags.Lookup("templates-dir"))
}

// loadConfig resolves the config file location through v as well, so
// --config wins over CONFIG_FILE.
func loadConfig(v *viper.Viper) (config.Config, error) {
	return config.Load(v, v.GetString("config_file"))
}
