// Package main provides the CLI entrypoint for cancatch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cancatch/internal/bot"
	"github.com/verte-zerg/cancatch/internal/config"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
	"github.com/verte-zerg/cancatch/internal/stats"
	"github.com/verte-zerg/cancatch/internal/store"
	"github.com/verte-zerg/cancatch/internal/tui"
)

const (
	defaultGoal       = 25
	defaultDuration   = 30
	defaultSpawnMs    = 900
	defaultLifetimeMs = 950
	defaultBadChance  = 0.22

	defaultSimRounds = 10
)

var (
	gameGoal       int
	gameDuration   int
	gameSpawnMs    int
	gameLifetimeMs int
	gameBadChance  float64
	gameSeed       int64

	simRounds   int
	simReaction time.Duration
	simAccuracy float64
	simMiss     float64
	simFormat   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cancatch",
		Short:         "Catch the clean-water cans before time runs out",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addGameFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSimCmd())

	return rootCmd
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gameGoal, "goal", defaultGoal, "cans needed to win")
	cmd.Flags().IntVar(&gameDuration, "duration", defaultDuration, "round length in seconds")
	cmd.Flags().IntVar(&gameSpawnMs, "spawn-ms", defaultSpawnMs, "milliseconds between spawns")
	cmd.Flags().IntVar(&gameLifetimeMs, "lifetime-ms", defaultLifetimeMs, "milliseconds a can stays on the grid")
	cmd.Flags().Float64Var(&gameBadChance, "bad-chance", defaultBadChance, "probability of a dirty can (0-1)")
	cmd.Flags().Int64Var(&gameSeed, "seed", 0, "random seed (0 picks one from the clock)")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveGameConfig(cmd, fileCfg.Game)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultRoundLogDSN())
	if err != nil {
		return fmt.Errorf("failed to open round log: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close round log: %v\n", cerr)
		}
	}()

	m := tui.NewModel(cfg, st, generator.ForConfig(cfg))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Play headless rounds with a bot and report the results",
		Args:  cobra.NoArgs,
		RunE:  runSimCmd,
	}
	addGameFlags(cmd)
	profile := bot.DefaultProfile()
	cmd.Flags().IntVar(&simRounds, "rounds", defaultSimRounds, "rounds to play")
	cmd.Flags().DurationVar(&simReaction, "reaction", profile.Reaction, "bot reaction time")
	cmd.Flags().Float64Var(&simAccuracy, "accuracy", profile.Accuracy, "probability the bot skips a dirty can (0-1)")
	cmd.Flags().Float64Var(&simMiss, "miss", profile.Miss, "probability the bot ignores a can (0-1)")
	cmd.Flags().StringVar(&simFormat, "format", "table", "output format (table or yaml)")
	return cmd
}

func runSimCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveGameConfig(cmd, fileCfg.Game)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "rounds", &simRounds, fileCfg.Sim.Rounds)
	applyMsConfig(cmd, "reaction", &simReaction, fileCfg.Sim.ReactionMs)
	applyFloatConfig(cmd, "accuracy", &simAccuracy, fileCfg.Sim.Accuracy)
	applyFloatConfig(cmd, "miss", &simMiss, fileCfg.Sim.Miss)

	profile := bot.Profile{Reaction: simReaction, Accuracy: simAccuracy, Miss: simMiss}
	if err := validateSim(simRounds, profile, simFormat); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultRoundLogDSN())
	if err != nil {
		return fmt.Errorf("failed to open round log: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close round log: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	bot.Simulate(cfg, profile, simRounds, func(r model.RoundStats) {
		if err := st.InsertRound(ctx, r); err != nil {
			logErrf("failed to save round: %v\n", err)
		}
	})

	report, err := stats.BuildReport(ctx, st, 0)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if simFormat == "yaml" {
		if err := report.WriteYAML(out); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	if err := report.WriteText(out, stats.TerminalWidth(os.Stdout)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// resolveGameConfig layers file values under explicit flags and validates
// the result.
func resolveGameConfig(cmd *cobra.Command, file config.GameConfig) (model.Config, error) {
	applyIntConfig(cmd, "goal", &gameGoal, file.Goal)
	applyIntConfig(cmd, "duration", &gameDuration, file.Duration)
	applyIntConfig(cmd, "spawn-ms", &gameSpawnMs, file.SpawnMs)
	applyIntConfig(cmd, "lifetime-ms", &gameLifetimeMs, file.LifetimeMs)
	applyFloatConfig(cmd, "bad-chance", &gameBadChance, file.BadChance)
	applyInt64Config(cmd, "seed", &gameSeed, file.Seed)

	cfg := model.Config{
		Goal:          gameGoal,
		Duration:      time.Duration(gameDuration) * time.Second,
		SpawnInterval: time.Duration(gameSpawnMs) * time.Millisecond,
		ItemLifetime:  time.Duration(gameLifetimeMs) * time.Millisecond,
		BadChance:     gameBadChance,
		Seed:          gameSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyMsConfig(cmd *cobra.Command, name string, target *time.Duration, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}

func defaultConfigTemplate() string {
	profile := bot.DefaultProfile()
	return fmt.Sprintf(`# cancatch configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# goal = %d               # Cans needed to win
# duration = %d           # Round length in seconds
# spawn-ms = %d          # Milliseconds between spawns
# lifetime-ms = %d       # Milliseconds a can stays on the grid
# bad-chance = %.2f       # Probability of a dirty can (0-1)
# seed = 0                # Random seed (0 picks one from the clock)

[sim]
# rounds = %d             # Rounds played by "cancatch sim"
# reaction-ms = %d       # Bot reaction time
# accuracy = %.2f         # Probability the bot skips a dirty can (0-1)
# miss = %.2f             # Probability the bot ignores a can (0-1)
`,
		defaultGoal,
		defaultDuration,
		defaultSpawnMs,
		defaultLifetimeMs,
		defaultBadChance,
		defaultSimRounds,
		profile.Reaction.Milliseconds(),
		profile.Accuracy,
		profile.Miss,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Goal <= 0 {
		return fmt.Errorf("--goal must be > 0")
	}
	if cfg.Duration < time.Second {
		return fmt.Errorf("--duration must be >= 1")
	}
	if cfg.SpawnInterval <= 0 {
		return fmt.Errorf("--spawn-ms must be > 0")
	}
	if cfg.ItemLifetime <= 0 {
		return fmt.Errorf("--lifetime-ms must be > 0")
	}
	if cfg.BadChance < 0 || cfg.BadChance > 1 {
		return fmt.Errorf("--bad-chance must be between 0 and 1")
	}
	return nil
}

func validateSim(rounds int, profile bot.Profile, format string) error {
	if rounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if profile.Reaction < 0 {
		return fmt.Errorf("--reaction must be >= 0")
	}
	if profile.Accuracy < 0 || profile.Accuracy > 1 {
		return fmt.Errorf("--accuracy must be between 0 and 1")
	}
	if profile.Miss < 0 || profile.Miss > 1 {
		return fmt.Errorf("--miss must be between 0 and 1")
	}
	if format != "table" && format != "yaml" {
		return fmt.Errorf("--format must be table or yaml")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
