package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/engine"
	"github.com/meshackyaro/Sanctifier/internal/logging"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/report"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		debounce   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-analyze whenever a .rs file under path changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(path, configPath)
			if err != nil {
				return err
			}
			w := &watcher{
				root:     path,
				cfg:      cfg,
				eng:      engine.New(cfg, engine.WithLogger(logging.L())),
				out:      cmd.OutOrStdout(),
				debounce: debounce,
				log:      logging.L(),
			}
			return w.run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: search for .sanctify.toml upward)")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Quiet period before re-analyzing after a change")
	return cmd
}

type watcher struct {
	root     string
	cfg      config.Config
	eng      *engine.Engine
	out      io.Writer
	debounce time.Duration
	log      *zap.Logger
}

// run analyzes once, then again after each burst of .rs changes, until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	fi, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("%s: %w", w.root, err)
	}
	single := ""
	if fi.IsDir() {
		if err := w.addTree(fw, w.root); err != nil {
			return err
		}
	} else {
		single = filepath.Clean(w.root)
		if err := fw.Add(filepath.Dir(single)); err != nil {
			return fmt.Errorf("watch %s: %w", single, err)
		}
	}

	w.scan(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if single == "" && ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.log.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if filepath.Ext(ev.Name) != ".rs" || (single != "" && filepath.Clean(ev.Name) != single) {
				continue
			}
			w.log.Debug("change detected", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			fmt.Fprintln(w.out, "\nChange detected, re-analyzing...")
			w.scan(ctx)
		}
	}
}

func (w *watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.cfg.Ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *watcher) scan(ctx context.Context) {
	res, err := w.eng.Scan(ctx, model.ScanRequest{Path: w.root})
	if err != nil {
		fmt.Fprintf(w.out, "analysis failed: %v\n", err)
		return
	}
	if err := report.Text(w.out, res); err != nil {
		w.log.Warn("render failed", zap.Error(err))
	}
}
