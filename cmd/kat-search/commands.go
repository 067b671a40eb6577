package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/litescript/kat-search/internal/config"
	"github.com/litescript/kat-search/internal/kat"
	"github.com/litescript/kat-search/internal/tui"
	"github.com/litescript/kat-search/internal/version"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse search results interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cfg)
	},
}

var checkUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kat-search v%s\n", version.Version)
		if !checkUpdate {
			return nil
		}
		info, err := version.CheckForUpdate(cmd.Context())
		if err != nil {
			return err
		}
		if info.UpdateAvailable {
			fmt.Fprintf(out, "v%s is available: %s\n", info.LatestVersion, version.InstallCommand())
		} else {
			fmt.Fprintln(out, "up to date")
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.SaveTo(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var codesCmd = &cobra.Command{
	Use:       "codes languages|platforms",
	Short:     "List the language or platform codes accepted by search",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"languages", "platforms"},
	Run: func(cmd *cobra.Command, args []string) {
		names, lookup := kat.Languages(), kat.LanguageCode
		if args[0] == "platforms" {
			names, lookup = kat.Platforms(), kat.PlatformCode
		}
		var b strings.Builder
		for _, name := range names {
			code, _ := lookup(name)
			fmt.Fprintf(&b, "%-16s %d\n", name, code)
		}
		fmt.Fprint(cmd.OutOrStdout(), b.String())
	},
}

func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

func init() {
	versionCmd.Flags().BoolVar(&checkUpdate, "check", false, "check GitHub for a newer release")
	configCmd.AddCommand(configPathCmd, configInitCmd)
	rootCmd.AddCommand(tuiCmd, versionCmd, configCmd, codesCmd)
}
