// Copyright 2025 The syllabix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the syllabix graph server and its CLI [DBG] mode.

syllabix splits phonetic keystrokes into every plausible sequence of
syllables. For each input it builds a syllable graph: the positions the input
can be cut at, and the syllables spanning each pair of positions with a
log-domain credibility. Spans that read both as one syllable and as two (for
example "xian" and "xi'an") are penalized at their joint.

# Usage

Start the server with the configured syllable table:

	syllabix

Use another table and enable debug logging:

	syllabix -table /path/to/pinyin.bin -d

Run in CLI mode for interactive testing:

	syllabix -c -correct

# Configuration

Runtime configuration is a TOML file created with defaults on first run:

	[syllabifier]
	enable_completion = false
	strict_spelling = false
	delimiters = " '"

	[corrector]
	enabled = false
	max_distance = 1
	near_key_cost = 0.5

	[dict]
	path = "data/pinyin"

	[[dict.rules]]
	kind = "abbrev"
	pattern = "^([zcs]h).+$"
	replacement = "$1"

	[server]
	max_input = 64

	[redis]
	addr = ""
	key = "syllabix:user_syllables"

When redis.addr is set, user syllables stored there are merged into the table
at startup. -user-add and -user-rm edit that store and exit.

# IPC Protocol

The server reads msgpack requests from stdin and writes one msgpack response
per request to stdout. Logs go to stderr.

	{"id": "req1", "action": "graph", "i": "xian"}

See package server for the response layout.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/bastiangx/syllabix/internal/cli"
	"github.com/bastiangx/syllabix/internal/logger"
	"github.com/bastiangx/syllabix/internal/utils"
	"github.com/bastiangx/syllabix/pkg/config"
	"github.com/bastiangx/syllabix/pkg/corrector"
	"github.com/bastiangx/syllabix/pkg/dictionary"
	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/bastiangx/syllabix/pkg/server"
	"github.com/bastiangx/syllabix/pkg/syllabify"
	"github.com/bastiangx/syllabix/pkg/userdict"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

const (
	Version = "0.3.0-beta"
	AppName = "syllabix"
	gh      = "https://github.com/bastiangx/syllabix"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to a custom config.toml")
	tablePath := flag.String("table", "", "Syllable table (.bin, .mpk or .txt), overrides dict.path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	correct := flag.Bool("correct", false, "Enable typo correction, overrides corrector.enabled")
	completion := flag.Bool("completion", false, "Accept partial syllables at the end of input, overrides syllabifier.enable_completion")
	userAdd := flag.String("user-add", "", "Store a user syllable as syllable=weight and exit")
	userRemove := flag.String("user-rm", "", "Remove a user syllable and exit")
	rebuildConfig := flag.Bool("rebuild-config", false, "Rewrite the default config.toml and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		logger.Setup(true)
	} else {
		logger.Setup(false)
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote %s", config.GetActiveConfigPath(""))
		return
	}

	cfg, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))
	if *tablePath != "" {
		cfg.Dict.Path = *tablePath
	}
	if *correct {
		cfg.Corrector.Enabled = true
	}
	if *completion {
		cfg.Syllabifier.EnableCompletion = true
	}

	var store *userdict.UserDict
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		store = userdict.New(client, cfg.Redis.Key)
	}
	if *userAdd != "" || *userRemove != "" {
		if err := editUserDict(ctx, store, *userAdd, *userRemove); err != nil {
			log.Fatalf("User dictionary: %v", err)
		}
		return
	}

	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	resolved := utils.ResolveTablePath(cfg.Dict.Path, configDir)
	table, err := dictionary.Load(resolved)
	if err != nil {
		log.Fatalf("Failed to load syllable table %s: %v", resolved, err)
	}
	log.Debugf("Loaded %d syllables from %s", table.Len(), resolved)

	if store != nil {
		syllables, err := store.Syllables(ctx)
		if err != nil {
			log.Warnf("Skipping user syllables: %v", err)
		} else {
			userdict.Merge(table, syllables)
		}
	}

	p, err := prism.New(table, cfg.Dict.Rules, cfg.Syllabifier.Delimiters)
	if err != nil {
		log.Fatalf("Failed to build prism: %v", err)
	}
	p.SetCompletion(cfg.Syllabifier.EnableCompletion)

	syl := syllabify.New(p, syllabify.Options{
		Delimiters:       cfg.Syllabifier.Delimiters,
		EnableCompletion: cfg.Syllabifier.EnableCompletion,
		StrictSpelling:   cfg.Syllabifier.StrictSpelling,
	})
	if cfg.Corrector.Enabled {
		corrCfg := corrector.DefaultConfig()
		corrCfg.MaxDistance = cfg.Corrector.MaxDistance
		corrCfg.NearKeyCost = cfg.Corrector.NearKeyCost
		syl.EnableCorrection(corrector.New(p, corrCfg))
	}

	// CLI mode is for testing tables and rules by hand.
	if *cliMode {
		handler := cli.NewInputHandler(syl, p, cfg.Server.MaxInput, os.Stdout)
		if err := handler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(resolved, p.Stats())
	srv := server.NewServer(syl, p, cfg.Server.MaxInput, os.Stdin, os.Stdout)
	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Server error: %v", err)
	}
	fmt.Fprintln(os.Stderr, "Exiting...")
}

// editUserDict applies -user-add and -user-rm to the Redis store.
func editUserDict(ctx context.Context, store *userdict.UserDict, add, remove string) error {
	if store == nil {
		return fmt.Errorf("redis.addr is not configured")
	}
	if add != "" {
		syllable, weightText, ok := strings.Cut(add, "=")
		if !ok {
			return fmt.Errorf("expected syllable=weight, got %q", add)
		}
		weight, err := strconv.ParseFloat(weightText, 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", weightText, err)
		}
		if err := store.Add(ctx, syllable, weight); err != nil {
			return err
		}
		log.Infof("Added user syllable %q", syllable)
	}
	if remove != "" {
		if err := store.Remove(ctx, remove); err != nil {
			return err
		}
		log.Infof("Removed user syllable %q", remove)
	}
	return nil
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ syllabix ] Syllable graphs for phonetic input")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info about the loaded table to stderr.
func showStartupInfo(table string, stats map[string]int) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("table: ( %s )", table)
	l.Info("prism", "syllables", stats["syllables"], "spellings", stats["spellings"])
	l.Info("status: ready")
}
