package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultDepotURL is the public depot queried when no URL is configured.
const DefaultDepotURL = "https://depot.silopkg.io"

type depotEnv struct {
	url       string
	authToken string
	channel   string
}

// resolveEnv resolves the depot connection settings with precedence:
// explicit CLI flag > SILO_* environment variable > built-in default.
func resolveEnv(cmd *cobra.Command, flags downloadFlags) depotEnv {
	v := viper.New()
	v.SetEnvPrefix("silo")
	v.AutomaticEnv()

	v.SetDefault("url", DefaultDepotURL)
	v.SetDefault("auth_token", "")
	v.SetDefault("channel", "")

	if cmd.Flags().Changed("url") {
		v.Set("url", flags.url)
	}
	if cmd.Flags().Changed("auth") {
		v.Set("auth_token", flags.authToken)
	}
	if cmd.Flags().Changed("channel") {
		v.Set("channel", flags.channel)
	}

	return depotEnv{
		url:       v.GetString("url"),
		authToken: v.GetString("auth_token"),
		channel:   v.GetString("channel"),
	}
}
