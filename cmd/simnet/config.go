package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/simnet-io/simnet/internal/core/assemble"
	"github.com/simnet-io/simnet/internal/core/domain"
	"github.com/simnet-io/simnet/internal/shell/compiler"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Compiler CompilerConfig `mapstructure:"compiler"`
	Exporter ExporterConfig `mapstructure:"exporter"`
	Log      LogConfig      `mapstructure:"log"`
}

// CompilerConfig holds the compilation parameters.
type CompilerConfig struct {
	// Output is the canonical deployment spec path.
	Output string `mapstructure:"output"`

	// ConfigDir holds base templates and per-node config artifacts.
	ConfigDir string `mapstructure:"config_dir"`

	// Network is the compose network name.
	Network string `mapstructure:"network"`

	// Mode is the config section the compiler operates under.
	Mode string `mapstructure:"mode"`

	// Subnet is the CIDR block node addresses are drawn from.
	Subnet string `mapstructure:"subnet"`

	// FallbackArch substitutes for a failed architecture detection.
	FallbackArch string `mapstructure:"fallback_arch"`
}

// ExporterConfig holds the per-node metrics exporter settings.
type ExporterConfig struct {
	BasePort    int    `mapstructure:"base_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	RPCPort     int    `mapstructure:"rpc_port"`
	RPCUser     string `mapstructure:"rpc_user"`
	RPCPassword string `mapstructure:"rpc_password"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	stock := compiler.DefaultOptions()
	v.SetDefault("compiler.output", stock.OutputPath)
	v.SetDefault("compiler.config_dir", stock.ConfigDir)
	v.SetDefault("compiler.network", stock.Assemble.Network)
	v.SetDefault("compiler.mode", stock.NetworkMode)
	v.SetDefault("compiler.subnet", stock.Subnet)
	v.SetDefault("compiler.fallback_arch", "")
	v.SetDefault("exporter.base_port", stock.Assemble.ExporterBasePort)
	v.SetDefault("exporter.metrics_port", stock.Assemble.ExporterMetricsPort)
	v.SetDefault("exporter.rpc_port", stock.Assemble.RPCPort)
	v.SetDefault("exporter.rpc_user", stock.Assemble.RPCUser)
	v.SetDefault("exporter.rpc_password", stock.Assemble.RPCPassword)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("SIMNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// CompilerOptions converts the loaded config into run options.
func (c *Config) CompilerOptions() compiler.Options {
	asm := assemble.DefaultOptions()
	asm.Network = c.Compiler.Network
	asm.ConfigDir = c.Compiler.ConfigDir
	asm.ExporterBasePort = c.Exporter.BasePort
	asm.ExporterMetricsPort = c.Exporter.MetricsPort
	asm.RPCPort = c.Exporter.RPCPort
	asm.RPCUser = c.Exporter.RPCUser
	asm.RPCPassword = c.Exporter.RPCPassword

	return compiler.Options{
		OutputPath:   c.Compiler.Output,
		ConfigDir:    c.Compiler.ConfigDir,
		NetworkMode:  c.Compiler.Mode,
		Subnet:       c.Compiler.Subnet,
		FallbackArch: domain.Architecture(c.Compiler.FallbackArch),
		Assemble:     asm,
	}
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
