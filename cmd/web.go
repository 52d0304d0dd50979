package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/catalogue/pkg/api"
	"github.com/rubiojr/catalogue/pkg/config"
	"github.com/rubiojr/catalogue/pkg/log"
	"github.com/rubiojr/catalogue/pkg/search"
	"github.com/urfave/cli/v3"
)

// WebCommand creates the web command serving the search API
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the catalogue search web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides web.port)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides web.host)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.Bool("debug"), c.String("host"), c.String("port"))
		},
	}
}

// WebServer holds the running service and the configuration it was built
// from.
type WebServer struct {
	mu         sync.Mutex
	configPath string
	debug      bool
	host       string
	port       string
	config     *config.Config
	service    *search.Service
	logger     *log.Logger
}

// startWebServer starts the web server and blocks until SIGINT or SIGTERM
func startWebServer(ctx context.Context, configPath string, debug bool, host, port string) error {
	cfg, err := loadConfig(configPath, debug)
	if err != nil {
		return err
	}
	if err := applyWebFlags(cfg, host, port); err != nil {
		return err
	}

	client := newClient(cfg)
	ws := &WebServer{
		configPath: configPath,
		debug:      debug,
		host:       host,
		port:       port,
		config:     cfg,
		service:    search.NewService(client, searchConfig(cfg)),
		logger:     log.ForService("web"),
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewServer(ws.service).Handler(cfg.Web.Gzip),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ws.logger.Infof("Starting web server on http://%s", server.Addr)
		ws.logger.Infof("Available endpoints:")
		ws.logger.Infof("  GET /api/search - Search the catalogue")
		ws.logger.Infof("  GET /api/buckets - List result groups")
		ws.logger.Infof("  GET /health - Health check")
		ws.logger.Infof("Search API: %s", client.BaseURL())

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		ws.logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				ws.logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			ws.logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			ws.logger.Infof("Watching config file for changes: %s", configPath)
		}
	}

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("web server: %w", err)
		case <-ctx.Done():
			return ws.shutdown(server)
		case sig := <-sigCh:
			if sig != syscall.SIGHUP {
				return ws.shutdown(server)
			}
			ws.logger.Infof("Received SIGHUP, reloading configuration...")
			ws.reload()
		case event, ok := <-watcherEvents(watcher):
			if !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			ws.logger.Infof("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// editors replace the file on save
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					ws.logger.Warnf("Config file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(configPath); err != nil {
					ws.logger.Warnf("failed to re-add config file to watcher: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}
			ws.reload()
		case err, ok := <-watcherErrors(watcher):
			if !ok {
				continue
			}
			ws.logger.Warnf("Config file watcher error: %v", err)
		}
	}
}

// reload swaps the search API client, the paging limits and the log
// settings. Listen address and compression need a restart.
func (ws *WebServer) reload() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	cfg, err := loadConfig(ws.configPath, ws.debug)
	if err != nil {
		ws.logger.Errorf("Failed to reload configuration: %v", err)
		return
	}
	if err := applyWebFlags(cfg, ws.host, ws.port); err != nil {
		ws.logger.Errorf("Failed to reload configuration: %v", err)
		return
	}
	if cfg.Addr() != ws.config.Addr() || cfg.Web.Gzip != ws.config.Web.Gzip {
		ws.logger.Warnf("web settings changed, restart to apply them")
	}

	client := newClient(cfg)
	ws.service.SetSearcher(client)
	ws.service.SetConfig(searchConfig(cfg))
	ws.config = cfg
	ws.logger.Infof("Configuration reloaded, search API: %s", client.BaseURL())
}

// applyWebFlags overrides the listen address with the command line flags.
func applyWebFlags(cfg *config.Config, host, port string) error {
	if host != "" {
		cfg.Web.Host = host
	}
	if port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		cfg.Web.Port = p
	}
	return nil
}

func (ws *WebServer) shutdown(server *http.Server) error {
	ws.logger.Infof("Shutting down web server...")
	ws.mu.Lock()
	timeout := ws.config.Web.ShutdownTimeout.Duration
	ws.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// watcherEvents and watcherErrors return nil channels when the watcher could
// not be created, so the select never picks them.
func watcherEvents(w *fsnotify.Watcher) <-chan fsnotify.Event {
	if w == nil {
		return nil
	}
	return w.Events
}

func watcherErrors(w *fsnotify.Watcher) <-chan error {
	if w == nil {
		return nil
	}
	return w.Errors
}
