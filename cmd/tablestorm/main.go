// Package main is the entry point for the tablestorm demo editor:
// it opens a markdown file in a terminal view where pipe tables
// become interactive grid widgets.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/host"
	"github.com/dshills/tablestorm/internal/syntax"
	"github.com/dshills/tablestorm/internal/widget"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tablestorm %s (%s)\n", version, commit)
		return 0
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tablestorm [flags] <file.md>")
		return 2
	}
	path := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logFile, err := os.OpenFile("tablestorm.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logFile.Close()

	log := host.NewLogger(host.LoggerConfig{
		Level:  host.ParseLogLevel(cfg.LogLevel),
		Output: logFile,
		Prefix: "tablestorm",
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	doc := document.New(string(data))
	term := host.NewTerminal(screen, doc, log)

	// Debounce timers must not run widget callbacks on their own
	// goroutine; the scheduler queues them and wakes the event loop,
	// which executes them between events.
	sched := host.NewLoopScheduler(func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	// Save intents arrive on the event loop (via the scheduler) and
	// are deferred past the current callback chain.
	saveCh := make(chan widget.WidgetID, 16)
	lifecycle := widget.NewLifecycle(widget.LifecycleConfig{
		Doc:      doc,
		Builder:  syntax.NewBuilder(),
		Tracker:  widget.NewTracker(),
		Host:     term,
		Geometry: term,
		Callbacks: widget.Callbacks{
			SaveIntent: func(id widget.WidgetID) {
				select {
				case saveCh <- id:
				default:
				}
			},
		},
	},
		widget.WithLifecycleLogger(log.WithComponent("lifecycle")),
		widget.WithGeometryTolerance(cfg.GeometryTolerance),
		widget.WithEditorOptions(
			widget.WithAutoGrow(cfg.AutoGrow),
			widget.WithBlurWindow(cfg.BlurWindow()),
			widget.WithScheduler(sched.Schedule),
			widget.WithEditorLogger(log.WithComponent("editor")),
		),
	)
	term.SetLifecycle(lifecycle)
	lifecycle.Attach()
	defer lifecycle.Close()

	// Hot config reload only adjusts the log level; widget options
	// apply to widgets created after the change.
	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, func(cfg config.Config, err error) {
			if err != nil {
				log.Warn("config reload failed", "error", err)
				return
			}
			log.SetLevel(host.ParseLogLevel(cfg.LogLevel))
		})
		if err == nil {
			defer watcher.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
		os.Exit(1)
	}()

	// First widget gets focus so Tab navigation works immediately.
	if decs := lifecycle.Decorations(); len(decs) > 0 {
		term.FocusWidget(decs[0].ID)
	}

	for {
		term.Draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			// Woken to run deferred widget callbacks below.
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
				if err := os.WriteFile(path, []byte(doc.Text()), 0o644); err != nil {
					log.Error("write file failed", "path", path, "error", err)
				}
				return 0
			}
			if handleCommand(ev, term) {
				continue
			}
			term.HandleKey(ev)
		}

		// Fired debounce callbacks run here, on the loop; any save
		// intents they emit are drained right after.
		sched.RunPending()
	drain:
		for {
			select {
			case id := <-saveCh:
				if ed, ok := lifecycle.Editor(id); ok {
					if err := ed.Save(); err != nil {
						log.Warn("save failed", "widget", id, "error", err)
					}
				}
			default:
				break drain
			}
		}
	}
}

// handleCommand dispatches structural table commands.
func handleCommand(ev *tcell.EventKey, term *host.Terminal) bool {
	ed, ok := term.FocusedEditor()
	if !ok {
		return false
	}
	switch ev.Key() {
	case tcell.KeyCtrlN:
		ed.InsertRowBelow()
	case tcell.KeyCtrlP:
		ed.InsertRowAbove()
	case tcell.KeyCtrlL:
		ed.InsertColumnRight()
	case tcell.KeyCtrlB:
		ed.InsertColumnLeft()
	case tcell.KeyCtrlD:
		ed.DeleteRow()
	case tcell.KeyCtrlX:
		ed.DeleteColumn()
	default:
		return false
	}
	return true
}
