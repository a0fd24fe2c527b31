// Package app wires configuration, logging, grammars and the comment
// engine around a single document, and drives it either once from the
// command line or interactively in a terminal.
package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/commentator/internal/config"
	"github.com/dshills/commentator/internal/config/watcher"
	"github.com/dshills/commentator/internal/engine"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/grammar"
	"github.com/dshills/commentator/internal/logging"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML config file. Empty uses config.DefaultPath.
	ConfigPath string

	// File is the document to open. Empty opens a scratch buffer.
	File string

	// Language overrides language detection for File.
	Language string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogOutput receives log lines when no log file is configured.
	// Nil discards them.
	LogOutput io.Writer

	// ReadOnly opens the document read-only.
	ReadOnly bool
}

// Application owns the components serving one document.
type Application struct {
	mu sync.Mutex

	opts     Options
	cfg      *config.Config
	logger   *logging.Logger
	closers  []io.Closer
	registry *grammar.Registry
	doc      *Document
	engine   *engine.Engine
	watcher  *watcher.Watcher
}

// New creates an Application and initializes its components in
// dependency order: config, logger, grammars, document, engine.
func New(opts Options) (*Application, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	a := &Application{opts: opts}
	if err := a.bootstrap(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Application) bootstrap() error {
	cfg, err := config.LoadWithEnv(a.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.cfg = cfg

	if err := a.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	reg, err := cfg.NewRegistry()
	if err != nil {
		return &InitError{Component: "grammars", Err: err}
	}
	a.registry = reg

	var bopts []buffer.Option
	if a.opts.ReadOnly {
		bopts = append(bopts, buffer.WithReadOnly())
	}
	if a.opts.File == "" {
		a.doc = NewDocument("", "", a.opts.Language, bopts...)
	} else {
		doc, err := OpenDocument(a.opts.File, a.opts.Language, reg, bopts...)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
		a.doc = doc
	}

	a.engine = a.newEngine(nil)
	a.logger.Info("opened %s (%s), %d grammars", a.doc.Name, a.doc.Language(), reg.Len())
	return nil
}

func (a *Application) initLogger() error {
	level := a.cfg.LogLevel()
	if a.opts.LogLevel != "" {
		l, err := logging.ParseLevel(a.opts.LogLevel)
		if err != nil {
			return err
		}
		level = l
	}

	switch {
	case a.cfg.Log.File != "":
		logger, closer, err := logging.OpenFile(a.cfg.Log.File, level)
		if err != nil {
			return err
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	case a.opts.LogOutput != nil:
		lc := logging.DefaultConfig()
		lc.Level = level
		lc.Output = a.opts.LogOutput
		a.logger = logging.New(lc)
	default:
		a.logger = logging.Nop()
	}
	return nil
}

func (a *Application) newEngine(prev *engine.Engine) *engine.Engine {
	opts := []engine.Option{
		engine.WithRegistry(a.registry),
		engine.WithWindow(a.cfg.Analyzer.Window),
		engine.WithLogger(a.logger),
	}
	if prev != nil {
		opts = append(opts, engine.WithMetrics(prev.Metrics()))
	}
	return engine.New(a.doc, opts...)
}

// Config returns the active configuration.
func (a *Application) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Document returns the open document.
func (a *Application) Document() *Document {
	return a.doc
}

// Engine returns the comment engine bound to the document.
func (a *Application) Engine() *engine.Engine {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine
}

// Registry returns the grammar registry.
func (a *Application) Registry() *grammar.Registry {
	return a.registry
}

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger {
	return a.logger
}

// Reload rereads the config file and grammar sources. On any error the
// running configuration and grammars are kept. Reload must run between
// key events, on the goroutine that dispatches them.
func (a *Application) Reload() error {
	cfg, err := config.LoadWithEnv(a.opts.ConfigPath)
	if err != nil {
		a.logger.Warn("reload: %v", err)
		return err
	}
	if err := cfg.LoadRegistry(a.registry); err != nil {
		a.logger.Warn("reload: %v", err)
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	prev := a.engine
	a.engine = a.newEngine(prev)
	prev.Destroy()
	a.logger.Info("reloaded %d grammars", a.registry.Len())
	return nil
}

// WatchConfig starts watching the config file and grammar sources and
// calls notify for every change. notify runs on the watcher goroutine; it
// should hand the event to the UI goroutine rather than call Reload.
func (a *Application) WatchConfig(notify func(watcher.Event)) error {
	paths := a.Config().WatchPaths()
	if a.opts.ConfigPath != "" && a.Config().Path == "" {
		paths = append(paths, a.opts.ConfigPath)
	}
	paths = existingDirs(paths)
	if len(paths) == 0 {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(paths...); err != nil {
		w.Close()
		return err
	}

	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()

	go func() {
		for ev := range w.Events() {
			a.logger.Debug("changed: %v", ev.Paths)
			notify(ev)
		}
	}()
	go func() {
		for err := range w.Errors() {
			a.logger.Warn("watcher: %v", err)
		}
	}()
	return nil
}

// existingDirs keeps the paths whose directory exists.
func existingDirs(paths []string) []string {
	var out []string
	for _, p := range paths {
		if info, err := os.Stat(filepath.Dir(p)); err == nil && info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

// Close tears down the engine, watcher and log file.
func (a *Application) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		a.engine.Destroy()
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
