// Copyright 2025 The WordPick Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs autocomplete widgets over named groups of items, either as a
MessagePack IPC server, an interactive line CLI, or a terminal UI.

Each group is a keyed list of titled items loaded from a TOML file. Every group
gets one field whose completer decides when the dropdown opens, what it shows
for the typed text, and which item is selected or cleared.

# Usage

Serve the groups in groups.toml over stdin/stdout:

	wordpick

Use a custom group file and enable debug logging:

	wordpick -groups ~/forms/groups.toml -d

Drive the widgets from a terminal:

	wordpick -t
	wordpick -c

# Group file

	[[group]]
	key = "fruit"
	placeholder = "Pick a fruit"
	completion = true

	[[group.item]]
	title = "Apple"

	[[group.item]]
	title = "Apricot"
	payload = { color = "orange" }

When [server] watch is enabled the file is reloaded on every save, and each
field is re-initialized against its new group.

# IPC Protocol

Requests name a group and an event:

	{"id": "r1", "g": "fruit", "e": "input", "t": "ap"}
	{"id": "r2", "g": "fruit", "e": "pick", "i": 0}

Each response carries the widget state and the events it emitted:

	{"id": "r2", "v": {"g": "fruit", "text": "Apricot", ...}, "ev": [{"k": "selected", ...}], "t": 41}

The "groups" event lists the loaded groups; "state" returns a view without
changing anything.

# Command Line Flags

	-groups string
	    Group file (default from config)
	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-c  Run the line CLI
	-t  Run the terminal UI
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/wordpick/internal/cli"
	"github.com/bastiangx/wordpick/internal/logger"
	"github.com/bastiangx/wordpick/internal/tui"
	"github.com/bastiangx/wordpick/internal/utils"
	"github.com/bastiangx/wordpick/pkg/config"
	"github.com/bastiangx/wordpick/pkg/group"
	"github.com/bastiangx/wordpick/pkg/server"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordpick"
	gh      = "https://github.com/bastiangx/wordpick"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	showVersion := flag.Bool("version", false, "Show current version")
	groupsFile := flag.String("groups", "", "Group file to load (default from config)")
	configFile := flag.String("config", "", "Path to custom config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("t", false, "Run the terminal UI")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// the TUI owns the terminal; keep signals for bubbletea
	if !*tuiMode {
		sigHandler(cancel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debug("Runtime", "info", pathResolver.GetRuntimeInfo())

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *groupsFile == "" {
		*groupsFile = appConfig.Server.GroupsFile
	}
	groupsPath := pathResolver.GetGroupsPath(*groupsFile)
	groups, err := group.LoadFile(groupsPath)
	if err != nil {
		log.Fatalf("Failed to load groups: %v", err)
	}
	log.Debugf("Loaded %d groups from %s", len(groups), groupsPath)

	switch {
	case *tuiMode:
		runTUI(ctx, groups, groupsPath, appConfig, pathResolver)
	case *cliMode:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(groups, appConfig, os.Stdout)
		if err := handler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	default:
		runServer(ctx, groups, groupsPath, appConfig)
	}
}

func runServer(ctx context.Context, groups []*group.Group, groupsPath string, cfg *config.Config) {
	log.Debug("spawning IPC")
	srv := server.NewServer(groups, cfg, os.Stdin, os.Stdout)
	if cfg.Server.Watch {
		watch(ctx, groupsPath, srv.ReplaceGroups)
	}
	showStartupInfo(groupsPath, len(groups))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func runTUI(ctx context.Context, groups []*group.Group, groupsPath string, cfg *config.Config, pr *utils.PathResolver) {
	logPath := filepath.Join(pr.GetConfigDir(), AppName+".log")
	if err := utils.EnsureDir(pr.GetConfigDir()); err != nil {
		log.Debugf("Config dir unavailable: %v", err)
	}
	if closer, err := logger.RedirectToFile(logPath); err == nil {
		defer closer.Close()
	} else {
		log.SetLevel(log.FatalLevel)
	}

	p := tea.NewProgram(tui.New(groups, cfg))
	if cfg.Server.Watch {
		watch(ctx, groupsPath, func(groups []*group.Group) {
			p.Send(tui.GroupsReloadedMsg{Groups: groups})
		})
	}
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}

func watch(ctx context.Context, path string, onReload group.ReloadFunc) {
	w, err := group.NewWatcher(path, group.DefaultDebounce, onReload)
	if err != nil {
		log.Warnf("Group file watching disabled: %v", err)
		return
	}
	go w.Run(ctx)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ WordPick ] Autocomplete fields over item groups")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// stdout carries the IPC stream, so it goes to stderr.
func showStartupInfo(groupsPath string, count int) {
	l := logger.NewWithConfig(os.Stderr, AppName, log.InfoLevel, false, false, log.TextFormatter)

	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("groups: %d from ( %s )", count, groupsPath)
	l.Info("status: ready")
}
