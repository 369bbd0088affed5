package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/carlosnayan/protomodel/internal/config"
	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/generator"
	"github.com/carlosnayan/protomodel/internal/logger"
)

var (
	generateConfigPath string
	generateSchema     string
	generateOutput     string
	generatePackage    string
	generateProtoc     string
	generateWatch      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the model, codec and test modules from a schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		if err := generator.Generate(opts); err != nil {
			return err
		}
		if generateWatch {
			return watchSchema(opts)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", "", "path to protomodel.conf")
	generateCmd.Flags().StringVar(&generateSchema, "schema", "", "schema path (overrides config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (overrides config)")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "generated package name (overrides config)")
	generateCmd.Flags().StringVar(&generateProtoc, "protoc", "", "protoc binary (overrides config)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "keep running and regenerate when the schema changes")
	rootCmd.AddCommand(generateCmd)
}

// buildOptions merges the config file with command-line overrides. The
// config file is optional when the schema comes in as a flag.
func buildOptions() (generator.Options, error) {
	var opts generator.Options

	cfg, err := config.Load(generateConfigPath)
	if err == nil {
		if len(cfg.Log) > 0 && len(logLevels) == 0 {
			logger.SetLogLevels(cfg.Log)
		}
		opts = generator.OptionsFromConfig(cfg)
	} else if generateSchema == "" {
		return opts, err
	}

	if generateSchema != "" {
		opts.SchemaPath = generateSchema
	}
	if generateOutput != "" {
		opts.OutputDir = generateOutput
	}
	if generatePackage != "" {
		opts.PackageName = generatePackage
	}
	if generateProtoc != "" {
		opts.ProtocPath = generateProtoc
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "gen/models"
	}
	return opts, nil
}

// watchSchema blocks, regenerating on every change to the schema file,
// until interrupted. Failed runs are reported and watching continues.
func watchSchema(opts generator.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pmerrors.Wrap(pmerrors.ErrConfig, err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that save through a
	// rename would otherwise detach the watch.
	if err := watcher.Add(filepath.Dir(opts.SchemaPath)); err != nil {
		return pmerrors.Wrap(pmerrors.ErrSchemaNotFound, err)
	}
	target, err := filepath.Abs(opts.SchemaPath)
	if err != nil {
		return pmerrors.Wrap(pmerrors.ErrSchemaNotFound, err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	logger.Info("watching %s", opts.SchemaPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target || !event.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			// One save often arrives as a burst of events.
			drainEvents(watcher, 100*time.Millisecond)
			logger.Info("schema changed, regenerating")
			if err := generator.Generate(opts); err != nil {
				logger.Error("generate: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		case <-interrupt:
			return nil
		}
	}
}

func drainEvents(watcher *fsnotify.Watcher, window time.Duration) {
	timer := time.NewTimer(window)
	defer timer.Stop()
	for {
		select {
		case <-watcher.Events:
		case <-timer.C:
			return
		}
	}
}
