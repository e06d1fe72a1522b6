package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/windfall/config"
	"github.com/pthm-cable/windfall/game"
	"github.com/pthm-cable/windfall/symbols"
)

var (
	configPath     string
	symbolsPath    string
	seed           int64
	maxTicks       int
	outputDir      string
	logStats       bool
	statsWindow    float64
	stepsPerUpdate int
)

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:          "windfall",
		Short:        "draw wind, fling symbols, merge them upward",
		SilenceUsage: true,
		RunE:         runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().StringVar(&symbolsPath, "symbols", "", "path to symbols.csv (empty = built-in table)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "output directory for CSV logs and config snapshot")
	rootCmd.PersistentFlags().BoolVar(&logStats, "log-stats", false, "output window stats via slog")
	rootCmd.PersistentFlags().Float64Var(&statsWindow, "stats-window", 0, "stats window size in seconds (0 = use config)")
	rootCmd.PersistentFlags().IntVar(&maxTicks, "max-ticks", 0, "stop after N ticks (0 = unlimited)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "open the game window",
		RunE:  runPlay,
	}

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the simulation without graphics",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().IntVar(&stepsPerUpdate, "steps-per-update", 1, "simulation ticks per update call")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		RunE:  printConfig,
	}

	rootCmd.AddCommand(playCmd, headlessCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the config and symbol table named by the persistent flags.
func load() (*config.Config, *symbols.Table, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return nil, nil, err
	}
	table, err := symbols.Load(symbolsPath)
	if err != nil {
		slog.Error("failed to load symbols", "error", err)
		return nil, nil, err
	}
	if err := table.CheckMaxLevel(cfg.Token.MaxLevel); err != nil {
		slog.Error("symbol table does not fit config", "error", err)
		return nil, nil, err
	}
	return cfg, table, nil
}

func options(headless bool) game.Options {
	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	return game.Options{
		Seed:           rngSeed,
		LogStats:       logStats,
		StatsWindowSec: statsWindow,
		OutputDir:      outputDir,
		Headless:       headless,
		StepsPerUpdate: stepsPerUpdate,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, table, err := load()
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Windfall")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, table, options(false))
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, table, err := load()
	if err != nil {
		return err
	}

	opts := options(true)
	g, err := game.NewGame(cfg, table, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := load()
	if err != nil {
		return err
	}
	data, err := cfg.MarshalYAMLBytes()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
