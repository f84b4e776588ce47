// promptbridge - input helper bridging an agent prompt hook and a
// resident editor window
//
//	promptbridge            Run as prompt-submit hook (reads JSON on stdin)
//	promptbridge -detach    Spawn the resident helper detached and exit
//	promptbridge -resident  Run the resident editor window
//	promptbridge history    Show recent deliveries
//	promptbridge version    Print version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	gioapp "gioui.org/app"

	"promptbridge/internal/clipboard"
	"promptbridge/internal/config"
	"promptbridge/internal/deliver"
	"promptbridge/internal/history"
	"promptbridge/internal/hook"
	"promptbridge/internal/hotkey"
	"promptbridge/internal/logging"
	"promptbridge/internal/notify"
	"promptbridge/internal/spawn"
	"promptbridge/internal/terminal"
	"promptbridge/internal/ui"
	"promptbridge/internal/window"
)

const version = "0.2.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("promptbridge %s\n", version)
			return
		case "history":
			os.Exit(cmdHistory(os.Args[2:]))
		case "help", "-h", "--help":
			usage()
			return
		}
	}

	var (
		resident     = flag.Bool("resident", false, "run the resident editor window")
		detach       = flag.Bool("detach", false, "spawn the resident helper detached and exit")
		terminalHWND = flag.Uint64("terminal-hwnd", 0, "terminal window handle passed from the hook")
		session      = flag.String("session", "", "agent session identifier")
		label        = flag.String("label", "", "session label shown in the helper window")
		configPath   = flag.String("config", config.ConfigPath(), "configuration file")
	)
	flag.Usage = usage
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptbridge: %v\n", err)
		os.Exit(1)
	}

	initLogging(cfg, modeName(*resident, *detach))

	switch {
	case *detach:
		os.Exit(runDetach(cfg, *session, *label))
	case *resident:
		runResident(loader, cfg, window.Handle(*terminalHWND), *session, *label)
	default:
		os.Exit(runHook(cfg, *session, *label))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `promptbridge %s - terminal input helper

Usage:
  promptbridge [flags]        Run as prompt-submit hook (reads JSON on stdin)
  promptbridge -detach        Spawn the resident helper detached and exit
  promptbridge -resident      Run the resident editor window
  promptbridge history [-n N] Show recent deliveries
  promptbridge version        Print version

Flags:
`, version)
	flag.PrintDefaults()
}

func modeName(resident, detach bool) string {
	switch {
	case detach:
		return "detach"
	case resident:
		return "resident"
	default:
		return "hook"
	}
}

func initLogging(cfg *config.Config, component string) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		format = logging.FormatText
	}
	filePath := cfg.Logging.FilePath
	if filePath == "" {
		filePath = logging.DefaultLogPath()
	}
	logger, err := logging.New(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    cfg.Logging.Output,
		FilePath:  filePath,
		Component: component,
	})
	if err != nil {
		// Stderr-only fallback keeps the helper alive.
		return
	}
	logging.SetDefault(logger)
}

// runDetach captures the foreground terminal window and spawns the
// resident helper. It must stay fast: the agent blocks on this process.
func runDetach(cfg *config.Config, session, label string) int {
	hwnd := window.Foreground()

	title := ui.WindowTitle(cfg.Window.TitlePrefix, uintptr(hwnd))
	if window.FindByTitle(title).IsValid() {
		logging.Debug("resident helper already running", "title", title)
		return 0
	}

	err := spawn.Resident(spawn.Options{
		TerminalHWND: uintptr(hwnd),
		Session:      session,
		Label:        label,
	})
	if err != nil {
		logging.Error("spawn resident helper", "error", err)
		return 1
	}
	return 0
}

// runHook services one prompt-submit invocation. A trigger prompt with
// clipboard content replaces the prompt with that content; a trigger
// without content brings up the resident helper instead. Non-trigger
// prompts pass through untouched.
func runHook(cfg *config.Config, session, label string) int {
	in, err := hook.ReadInput(os.Stdin)
	if err != nil {
		logging.Warn("hook input unreadable", "error", err)
		return 0
	}
	if !hook.IsTrigger(in.Prompt) {
		return 0
	}

	if err := hook.OutputFromClipboard(os.Stdout, clipboard.Read); err == nil {
		logging.Info("hook output written from clipboard", "session", in.SessionID)
		return 0
	}

	// Nothing staged yet. Hand off to the resident helper so the
	// operator can compose there; the next trigger picks it up.
	if session == "" {
		session = in.SessionID
	}
	if code := runDetach(cfg, session, label); code != 0 {
		return code
	}
	return 0
}

// runResident wires the toggle chord, delivery sequencer, and editor
// window together, then hands the process to the UI event loop.
func runResident(loader *config.Loader, cfg *config.Config, terminalHWND window.Handle, session, label string) {
	if err := cfg.EnsureDirectories(); err != nil {
		logging.Warn("prepare directories", "error", err)
	}
	if !window.Supported() {
		logging.Warn("window operations unsupported on this platform, editor runs without delivery")
	}

	if !terminalHWND.IsValid() {
		terminalHWND = discoverTerminal(cfg)
	}
	title := ui.WindowTitle(cfg.Window.TitlePrefix, uintptr(terminalHWND))
	logging.Info("resident helper starting",
		"terminal_hwnd", uintptr(terminalHWND), "title", title, "session", session)

	targets := &hotkey.Targets{}
	targets.SetTerminal(terminalHWND)

	engine := hotkey.NewEngine(cfg.Hotkey.TriggerKey, targets)
	if cfg.Hotkey.Enabled && terminalHWND.IsValid() {
		if ok, reason := hotkey.Available(); !ok {
			logging.Warn("toggle chord unavailable", "reason", reason)
		} else if err := engine.Start(); err != nil {
			logging.Warn("toggle chord disabled", "error", err)
		} else {
			defer engine.Stop()
		}
	}

	// The window handle does not exist until the UI loop creates it,
	// so discovery of our own window polls by title.
	go registerOwnWindow(cfg, title, targets)

	var store *history.Store
	if cfg.History.Enabled {
		s, err := history.Open(cfg.History.Path)
		if err != nil {
			logging.Warn("history store unavailable", "error", err)
		} else {
			store = s
			defer store.Close()
			if _, err := store.Prune(cfg.History.Keep); err != nil {
				logging.Debug("history prune failed", "error", err)
			}
		}
	}

	seq := deliver.NewSequencer(cfg.ActivateSettle(), cfg.PasteSettle(), cfg.Delivery.TriggerText)
	seq.Resolve = func() window.Handle {
		h := discoverTerminal(cfg)
		if h.IsValid() {
			targets.SetTerminal(h)
		}
		return h
	}

	if err := loader.Watch(); err == nil {
		loader.OnChange(func(next *config.Config) {
			seq.ActivateSettle = next.ActivateSettle()
			seq.PasteSettle = next.PasteSettle()
			logging.Info("configuration reloaded")
		})
		defer loader.Close()
	}

	uiApp := ui.New(ui.Options{
		Title:  title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Label:  label,
		Submit: func(text string) error {
			return submit(seq, store, targets, session, text)
		},
	})

	go func() {
		w := new(gioapp.Window)
		if err := uiApp.Run(w); err != nil {
			logging.Error("window loop", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	gioapp.Main()
}

// submit stages the prompt on the clipboard and runs the paste-and-submit
// sequence into the terminal.
func submit(seq *deliver.Sequencer, store *history.Store, targets *hotkey.Targets, session, text string) error {
	text = clipboard.NormalizeSubmission(text)
	if text == "" {
		return errors.New("nothing to send")
	}

	target := targets.Terminal()
	if err := clipboard.Write(text); err != nil {
		return err
	}

	err := seq.Deliver(target)
	if store != nil {
		outcome := history.OutcomeDelivered
		if err != nil {
			outcome = history.OutcomeFailed
		}
		if _, herr := store.Append(&history.Delivery{
			SessionID:   session,
			TargetTitle: window.Title(target),
			Prompt:      text,
			Outcome:     outcome,
		}); herr != nil {
			logging.Debug("history append failed", "error", herr)
		}
	}
	if err != nil {
		notify.DeliveryFailed(err.Error())
		return err
	}
	return nil
}

// discoverTerminal falls back to process ancestry when no handle was
// passed on the command line.
func discoverTerminal(cfg *config.Config) window.Handle {
	locator := terminal.NewLocator(cfg.Terminal.ExtraProcessNames)
	term, ok, err := locator.FindCurrent()
	if err != nil {
		logging.Warn("process snapshot failed", "error", err)
		return window.None
	}
	if !ok {
		logging.Info("no terminal found in process ancestry")
		return window.None
	}
	hwnd := window.ForProcess(term.PID)
	logging.Info("terminal discovered",
		"name", term.Name, "pid", term.PID, "hwnd", uintptr(hwnd))
	return hwnd
}

// registerOwnWindow polls for the helper's window by title until it
// appears or the deadline passes, then registers it as the toggle
// endpoint.
func registerOwnWindow(cfg *config.Config, title string, targets *hotkey.Targets) {
	deadline := cfg.PollDeadline()
	interval := cfg.PollInterval()
	for waited := interval; waited <= deadline; waited += interval {
		time.Sleep(interval)
		if h := window.FindByTitle(title); h.IsValid() {
			targets.SetHelper(h)
			logging.Debug("helper window registered", "hwnd", uintptr(h))
			return
		}
	}
	logging.Warn("helper window never appeared", "title", title)
}

func cmdHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "number of deliveries to show")
	configPath := fs.String("config", config.ConfigPath(), "configuration file")
	fs.Parse(args)

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptbridge: %v\n", err)
		return 1
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptbridge: %v\n", err)
		return 1
	}
	defer store.Close()

	deliveries, err := store.Recent(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptbridge: %v\n", err)
		return 1
	}
	if len(deliveries) == 0 {
		fmt.Println("No deliveries recorded.")
		return 0
	}
	for _, d := range deliveries {
		prompt := d.Prompt
		if len(prompt) > 60 {
			prompt = prompt[:57] + "..."
		}
		fmt.Printf("%s  %-9s  %s\n",
			d.Timestamp.Format("2006-01-02 15:04:05"), d.Outcome, strconv.Quote(prompt))
	}
	return 0
}
