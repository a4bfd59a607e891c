package main

import (
	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "simnet",
	Short: "Compile simulated bitcoin network topologies into deployment specs",
	Long: `simnet compiles a declarative GraphML topology of simulated bitcoin
nodes into a docker-compose deployment specification: per-node config
files, unique subnet addresses, build or pull instructions per version,
and a prometheus/grafana monitoring stack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("simnet %s (built %s)\n", Version, BuildTime)
	},
}
