package main

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/parkerchace/MusicTheory-sub004/engine"
	"github.com/parkerchace/MusicTheory-sub004/engine/config"
	"github.com/parkerchace/MusicTheory-sub004/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	jsonOutput bool

	eng *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:           "harmonic",
	Short:         "Chord search and four-part voice leading",
	Long:          `Finds every chord containing a set of notes, grades it against a scale, and voices chord progressions for soprano, alto, tenor and bass.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if jsonOutput {
			// stdout carries the JSON document
			logging.SetGlobalLogger(logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Level()))
		} else {
			logging.SetLevel(cfg.Level())
		}
		logger := logging.WithFields(logging.Fields{
			"run_id":  uuid.New().String(),
			"command": cmd.Name(),
		})

		e, err := engine.New(cfg)
		if err != nil {
			logger.Error(err, "Invalid configuration")
			return err
		}
		eng = e.WithLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

// loadConfig layers defaults, the config file, .env and HARMONY_* variables, then flags
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := config.FromEnv(cfg); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
