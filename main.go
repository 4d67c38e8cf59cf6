package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/odvcencio/wedit/config"
)

type flags struct {
	tabWidth   int
	chunkSize  int
	configPath string
	logPath    string
}

func main() {
	var f flags
	flag.IntVar(&f.tabWidth, "tab-width", 0, "tab width in columns (default from config)")
	flag.IntVar(&f.chunkSize, "chunk-size", 0, "bytes paged in per chunk (default from config)")
	flag.StringVar(&f.configPath, "config", "", "config file (default $WEDIT_CONFIG, ./.wedit.yaml, then the user config dir)")
	flag.StringVar(&f.logPath, "log", "", "write a debug log to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: wedit [flags] FILE\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), f); err != nil {
		fmt.Fprintf(os.Stderr, "wedit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, f flags) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	cfg, used, warnings, err := loadConfig(absPath, f)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	if used != "" {
		logger.Printf("config: using %s", used)
	}
	for _, w := range warnings {
		logger.Printf("config: %v", w)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnablePaste()

	opts := cfg.Options()
	opts.Logger = logger
	opts.Clipboard = newClipboard(cfg.Clipboard, os.Stdout, logger)
	return runEditor(ctx, screen, absPath, opts, logger)
}

// loadConfig resolves settings from the config file, the environment and
// flags, in increasing priority. Recoverable problems come back as warnings.
func loadConfig(absPath string, f flags) (config.Config, string, []error, error) {
	paths := config.SearchPaths(filepath.Dir(absPath))
	if f.configPath != "" {
		if _, err := os.Stat(f.configPath); err != nil {
			return config.Config{}, "", nil, fmt.Errorf("config: %w", err)
		}
		paths = []string{f.configPath}
	}
	cfg, used, err := config.Load(paths)
	if err != nil {
		return cfg, used, nil, err
	}

	var warnings []error
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		warnings = append(warnings, err)
	}
	if f.tabWidth > 0 {
		cfg.TabWidth = f.tabWidth
	}
	if f.chunkSize > 0 {
		cfg.ChunkSize = f.chunkSize
	}
	if f.logPath != "" {
		cfg.LogFile = f.logPath
	}
	if err := cfg.Validate(); err != nil {
		warnings = append(warnings, err)
	}
	return cfg, used, warnings, nil
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	return log.New(f, "wedit ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}
