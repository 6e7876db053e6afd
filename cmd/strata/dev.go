package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/strata-dev/strata/internal/config"
	"github.com/strata-dev/strata/internal/dev"
	"github.com/strata-dev/strata/internal/errors"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development loop with live reload.

The app process is run with 'go run .' and restarted whenever a route
file changes. Stylesheet changes hot-swap without a restart, and other
asset changes trigger a full browser reload over the reload WebSocket.

Examples:
  strata dev
  strata dev --port=8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from strata.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from strata.json)")

	return cmd
}

func runDev(port int, host string) error {
	if _, err := exec.LookPath("go"); err != nil {
		return errors.New("E302").
			WithDetail("Go is not installed or not in PATH").
			WithSuggestion("Install Go from https://go.dev/dl/")
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	// A .env file is optional in development; missing is fine.
	if err := godotenv.Load(); err == nil {
		info("Loaded .env")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n  Shutting down...")
		cancel()
	}()

	reload := dev.NewReloadServer()
	loop := &devLoop{cfg: cfg, reload: reload}

	watcher := dev.NewWatcher(dev.WatcherConfig{
		Paths:  cfg.Dev.Watch,
		Ignore: cfg.Dev.Ignore,
	})
	watcher.OnChange(func(change dev.Change) {
		switch change.Type {
		case dev.ChangeRoute:
			info("Route change: %s", change.Path)
			loop.restart()
			if cfg.Dev.Reload {
				reload.NotifyReload()
			}
		case dev.ChangeCSS:
			if cfg.Dev.Reload {
				reload.NotifyCSS(change.Path)
				success("Refreshed styles on %d browsers", reload.ClientCount())
			}
		default:
			if cfg.Dev.Reload {
				reload.NotifyReload()
			}
		}
	})

	// The reload WebSocket rides on its own port next to the app.
	reloadAddr := fmt.Sprintf("%s:%d", cfg.Dev.Host, cfg.Dev.Port+1)
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/_strata/reload", reload.HandleWebSocket)
		if err := http.ListenAndServe(reloadAddr, mux); err != nil {
			warn("Reload server stopped: %s", err)
		}
	}()

	if err := loop.start(); err != nil {
		return errors.New("E302").Wrap(err)
	}
	success("Dev server on http://%s:%d (reload on ws://%s)", cfg.Dev.Host, cfg.Dev.Port, reloadAddr)

	err = watcher.Start(ctx)
	loop.stop()
	if err == context.Canceled {
		return nil
	}
	return err
}

// devLoop owns the child app process.
type devLoop struct {
	cfg    *config.Config
	reload *dev.ReloadServer
	proc   *exec.Cmd
}

// start launches the app with 'go run .'.
func (l *devLoop) start() error {
	cmd := exec.Command("go", "run", ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("STRATA_HOST=%s", l.cfg.Dev.Host),
		fmt.Sprintf("STRATA_PORT=%d", l.cfg.Dev.Port),
		"STRATA_DEV=1",
	)
	if err := cmd.Start(); err != nil {
		return err
	}
	l.proc = cmd
	return nil
}

// restart stops the running process and starts a fresh one.
func (l *devLoop) restart() {
	l.stop()
	if err := l.start(); err != nil {
		warn("Restart failed: %s", err)
		l.reload.NotifyError(err.Error())
		return
	}
	l.reload.ClearError()
}

// stop terminates the child process and waits for it to exit.
func (l *devLoop) stop() {
	if l.proc == nil || l.proc.Process == nil {
		return
	}
	l.proc.Process.Signal(syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		l.proc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		l.proc.Process.Kill()
		<-done
	}
	l.proc = nil
}
