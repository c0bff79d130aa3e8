package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"ltask/internal/backend/localstore"
	"ltask/internal/commands"
	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/logging"
	"ltask/internal/service"
	"ltask/internal/storage"
)

// ServiceFactory creates a loaded Service from config. The returned Closer
// releases the underlying storage.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, io.Closer, error)

// LocalStoreFactory opens the configured storage backend and loads the task
// collection from it.
func LocalStoreFactory(ctx context.Context, cfg *config.Config) (service.Service, io.Closer, error) {
	logger := *zerolog.Ctx(ctx)

	kv, err := storage.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	s := localstore.New(kv, localstore.Options{
		Key:    cfg.Settings.Storage.Key,
		IDs:    localstore.NewIDGenerator(cfg.Settings.IDs, nil),
		Logger: logger,
	})
	if err := s.Load(ctx); err != nil {
		kv.Close()
		return nil, nil, err
	}
	return s, kv, nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// A nil factory means LocalStoreFactory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	if factory == nil {
		factory = LocalStoreFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> list everything
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, err := d.registry.Lookup(cmdName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	positionalArgs := fs.Args()

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, debug)
	if cmd.Interactive() && debug {
		// Keep the screen clean; the log goes next to the data
		if err := cfg.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		fileLogger, closeLog, err := logging.NewFile(cfg.LogPath(), debug)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		defer closeLog()
		logger = fileLogger
	}
	ctx = logger.WithContext(ctx)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("config_dir", cfg.Dir).
		Str("backend", cfg.Settings.Storage.Backend).
		Msg("dispatch")

	var svc service.Service
	if cmd.NeedsStore() {
		var closer io.Closer
		svc, closer, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		if closer != nil {
			defer func() {
				if err := closer.Close(); err != nil {
					logger.Warn().Err(err).Msg("closing storage")
				}
			}()
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, in, out, errOut)
}
