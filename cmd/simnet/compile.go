package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/simnet-io/simnet/internal/core/domain"
	"github.com/simnet-io/simnet/internal/shell/compiler"
	"github.com/simnet-io/simnet/internal/shell/graph"
	"github.com/simnet-io/simnet/internal/shell/sysinfo"
)

var (
	outputFlag string
	archFlag   string
)

var compileCmd = &cobra.Command{
	Use:   "compile <topology.graphml>",
	Short: "Compile a topology graph into a deployment specification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if outputFlag != "" {
			cfg.Compiler.Output = outputFlag
		}
		if archFlag != "" {
			cfg.Compiler.FallbackArch = archFlag
		}

		logger := SetupLogger(cfg)
		runID := uuid.New().String()
		logger = logger.With("run_id", runID)
		logger.Info("starting compilation",
			"version", Version,
			"topology", args[0],
			"output", cfg.Compiler.Output,
		)

		opts := cfg.CompilerOptions()
		opts.GraphPath = args[0]

		var detector sysinfo.Detector = sysinfo.Uname{}
		if archFlag != "" {
			detector = sysinfo.Static(domain.Architecture(archFlag))
		}

		c := compiler.New(opts, detector, graph.LoadGraphML, logger)
		result, err := c.Run(cmd.Context())
		if err != nil {
			logger.Error("compilation failed", "error", err)
			return err
		}

		logger.Info("compilation complete",
			"nodes", result.Nodes,
			"services", result.Services,
			"arch", result.Arch,
			"output", result.OutputPath,
		)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVar(&outputFlag, "output", "", "deployment spec output path (default docker-compose.yml)")
	compileCmd.Flags().StringVar(&archFlag, "arch", "", "target architecture, skips host detection")
}
