package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"go-tenbox/internal/config"
	"go-tenbox/internal/scoring"
	"go-tenbox/internal/state"
)

type timerFlag int

func (t *timerFlag) String() string {
	return fmt.Sprint(int(*t))
}

func (t *timerFlag) Set(s string) error {
	val, err := config.ParseDuration(s)
	if err != nil {
		return err
	}
	if val < 1 {
		return fmt.Errorf("time limit must be at least 1 second")
	}
	*t = timerFlag(val)
	return nil
}

// openLog sends the log to path. The terminal belongs to the UI, so when the
// file cannot be opened logging is dropped.
func openLog(path, level string) (zerolog.Logger, func()) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	return zerolog.New(f).With().Timestamp().Logger(), func() { f.Close() }
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	tFlag := timerFlag(cfg.TimeLimit)
	var light, noBell bool

	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "Board rows")
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "Board columns")
	flag.Var(&tFlag, "timer", "Time limit (e.g. 120 or 2:00)")
	flag.Var(&tFlag, "t", "Time limit (shorthand)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the board (0 = time based)")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "Ranking storage: json or sqlite")
	flag.StringVar(&cfg.Rankings, "rankings", cfg.Rankings, "Path of the ranking file")
	flag.BoolVar(&light, "light", false, "Start with the light colour theme")
	flag.BoolVar(&noBell, "nobell", false, "Start with the terminal bell disabled")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDrag a rectangle over numbers that sum to 10 to clear them.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.TimeLimit = int(tFlag)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, closeLog := openLog(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	storage, closeStorage, err := scoring.OpenStorage(cfg.Store, cfg.Rankings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open rankings: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage()
	rankings := scoring.NewRankingStore(storage, logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int("rows", cfg.Rows).Int("cols", cfg.Cols).Int("time_limit", cfg.TimeLimit).Int64("seed", seed).Msg("starting tenbox")

	opts := state.GameOptions{Rows: cfg.Rows, Cols: cfg.Cols, TimeLimit: cfg.TimeLimit}
	model := newLocalState(opts, rand.New(rand.NewSource(seed)), rankings, logger, os.Stderr)
	model.Light = light
	model.Bell = !noBell

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}
}
