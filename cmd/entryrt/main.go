// Package main is the entry point for the entryrt CLI: it loads an
// Entry-style project file, builds the block execution engine, and
// drives its tick loop headlessly (or against a renderer/audio/input
// adapter wired in by an embedder), per §6's CLI contract.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/entryrt/engine/internal/config"
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/eventbus"
	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/scheduler"
	"github.com/entryrt/engine/internal/stageio"
	"github.com/entryrt/engine/internal/varstore"
)

var (
	flagSetFPS     int
	flagSetVsync   int
	flagUseVk      int
	flagConfigPath string
	flagCloudFile  string
	flagObserver   bool
)

func main() {
	root := &cobra.Command{
		Use:   "entryrt",
		Short: "Block execution engine for Entry-style visual programs",
	}
	root.PersistentFlags().IntVar(&flagSetFPS, "setfps", 0, "override the project's declared tick rate (must be > 0)")
	root.PersistentFlags().IntVar(&flagSetVsync, "setVsync", 1, "0|1, vsync hint passed to the renderer")
	root.PersistentFlags().IntVar(&flagUseVk, "useVk", 0, "0|1, renderer backend hint")
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "optional YAML settings file")
	root.PersistentFlags().StringVar(&flagCloudFile, "cloud-file", "", "path to the cloud-variable mirror file")
	root.PersistentFlags().BoolVar(&flagObserver, "observer", false, "serve a read-only WebSocket event feed")

	root.AddCommand(runCmd())
	root.AddCommand(validateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <project.json>",
		Short: "Load a project and drive its tick loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project.json>",
		Short: "Parse a project and report structural errors without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read project: %w", err)
			}
			p, err := model.Parse(data)
			if err != nil {
				return fmt.Errorf("invalid project: %w", err)
			}
			fmt.Printf("ok: %d objects, %d scenes, target fps %d\n", len(p.Objects), len(p.Scenes), p.TargetFPS())
			return nil
		},
	}
}

func runProject(path string) error {
	cfg, err := config.LoadFromPath(flagConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmdFlagChanged("setfps") {
		cfg.SetFPS = flagSetFPS
	}
	if cmdFlagChanged("setVsync") {
		cfg.SetVsync = flagSetVsync != 0
	}
	if cmdFlagChanged("useVk") {
		cfg.UseVk = flagUseVk != 0
	}
	if flagCloudFile != "" {
		cfg.CloudFile = flagCloudFile
	}
	if flagObserver {
		cfg.ObserverOn = true
	}

	log := logging.New(logging.Config{
		MinLevel:   parseLevel(cfg.LogLevel),
		ConsoleOut: os.Stderr,
		NoColor:    cfg.NoColor || termenv.ColorProfile() == termenv.Ascii,
	})
	log.Hello("entryrt starting", map[string]any{"project": path})

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read project file", map[string]any{"err": err.Error()})
		return err
	}
	proj, err := model.Parse(data)
	if err != nil {
		log.Error("failed to parse project", map[string]any{"err": err.Error()})
		return err
	}
	if cfg.SetFPS > 0 {
		proj.Speed = cfg.SetFPS
	}

	reg := registry.New()
	reg.LoadProject(proj)

	vars := varstore.New(log)
	if cfg.CloudFile != "" {
		vars.SetCloudMirror(varstore.NewCloudMirror(cfg.CloudFile, log))
	}
	vars.LoadProject(proj)

	clock := stageio.NewSystemClock()
	env := eval.NewEnv(reg, vars, clock, stageio.NullInput{}, stageio.NullAudio{}, log, 480, 270)

	idx := eventbus.Build(proj)
	bus := eventbus.NewBus()
	defer bus.Close()

	if cfg.ObserverOn {
		obs := eventbus.NewObserver(bus, log)
		mux := http.NewServeMux()
		mux.Handle(eventbus.WebSocketEndpoint, obs.Handler())
		srv := &http.Server{Addr: cfg.ObserverAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("observer server exited", map[string]any{"err": err.Error()})
			}
		}()
		defer srv.Close()
		log.Info("observer listening", map[string]any{"addr": cfg.ObserverAddr, "path": eventbus.WebSocketEndpoint})
	}

	sched := scheduler.New(proj, env, idx, bus, log)
	sched.Start()

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	log.Info("engine running", map[string]any{"fps": proj.TargetFPS(), "vsync": cfg.SetVsync, "useVk": cfg.UseVk})
	sched.Run(stop)
	log.Info("engine stopped", nil)
	return nil
}

// cmdFlagChanged reports whether a persistent flag was given a
// non-default value. With only three scalar flags, comparing against
// their declared defaults is simpler than threading the owning
// *cobra.Command through to call Flags().Changed.
func cmdFlagChanged(name string) bool {
	switch name {
	case "setfps":
		return flagSetFPS != 0
	case "setVsync":
		return flagSetVsync != 1
	case "useVk":
		return flagUseVk != 0
	}
	return false
}

func parseLevel(s string) logging.Level {
	switch s {
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	case "debug":
		return logging.LevelDebug
	default:
		return logging.LevelInfo
	}
}

