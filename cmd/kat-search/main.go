// kat-search queries the KickassTorrents search endpoint from the terminal,
// either as a one-shot command printing a table or JSON, or as an
// interactive browser.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/litescript/kat-search/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "kat-search",
	Short:         "Search KickassTorrents from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		var err error
		cfg, err = loadConfig()
		return err
	},
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default "+config.ConfigPath()+")")
	flags.BoolP("verbose", "v", false, "log requests to stderr")
	flags.Int("timeout", 0, "request timeout in seconds")
	flags.String("base-url", "", "search endpoint base URL")
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("base-url", flags.Lookup("base-url"))

	viper.SetEnvPrefix("KAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the TOML file and applies flag and KAT_* env overrides.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.ConfigPath()
	}
	c, err := config.LoadFrom(path)
	if err != nil {
		return c, fmt.Errorf("loading %s: %w", path, err)
	}
	if viper.IsSet("timeout") && viper.GetInt("timeout") > 0 {
		c.Search.WebRequestTimeout = viper.GetInt("timeout")
	}
	if viper.IsSet("base-url") && viper.GetString("base-url") != "" {
		c.Search.BaseURL = viper.GetString("base-url")
	}
	log.WithFields(log.Fields{
		"config":  path,
		"baseURL": c.Search.BaseURL,
		"timeout": c.Timeout(),
	}).Debugf("Loaded config")
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
