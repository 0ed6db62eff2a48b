package watch

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sidkik/overlaysync/cmd/util"
	"github.com/sidkik/overlaysync/pkg/errors"
	"github.com/sidkik/overlaysync/pkg/fswatch"
	"github.com/sidkik/overlaysync/pkg/overlay"
)

// defaultPollInterval is how often the sources are synced when no file
// events arrive.
const defaultPollInterval = 15 * time.Second

// New creates a new `watch` command.
func New() *cobra.Command {
	var flags util.SyncFlags
	var pollInterval time.Duration
	cmd := &cobra.Command{
		Use:   "watch [SOURCE...]",
		Short: "Keep the target directory in sync as the sources change",
		Long: "Runs `sync` whenever a file in one of the source directories " +
			"changes, and at least once every poll interval. It runs until " +
			"interrupted.",
		Run: func(_ *cobra.Command, args []string) {
			if err := run(flags, pollInterval, args); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(cmd)
	cmd.Flags().DurationVar(&pollInterval, "poll", defaultPollInterval,
		"How often to sync when no file changes are detected.")
	return cmd
}

func run(flags util.SyncFlags, pollInterval time.Duration, args []string) error {
	plan, err := flags.Plan(args)
	if err != nil {
		return err
	}

	fileEvents, err := fswatch.Watch(plan.SourcePaths())
	if err != nil {
		rootCause := errors.RootCause(err)
		if dneErr, ok := rootCause.(errors.FileNotFound); ok {
			return errors.NewFriendlyError(
				"Failed to watch files for syncing.\n"+
					"Source directory %q doesn't exist.", dneErr.Path)
		} else if strings.Contains(rootCause.Error(), "too many open files") {
			log.Warnf("Too many files to automatically watch for changes. "+
				"Polling for changes every %s instead.", pollInterval)

			// A nil channel never fires, so only the poll interval triggers syncs.
			fileEvents = nil
		} else {
			return errors.WithContext(err, "watch files")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fs := afero.NewOsFs()
	logger := util.NewActionLogger(os.Stdout, !flags.NoColor)
	w := watcher{
		clock:        clockwork.NewRealClock(),
		pollInterval: pollInterval,
		fileEvents:   fileEvents,
		sync: func() (bool, error) {
			return overlay.MergeAndUpdateDir(fs, plan.Sources, plan.Target, plan.Options, logger)
		},
	}
	w.run(ctx)
	return nil
}

type watcher struct {
	clock        clockwork.Clock
	pollInterval time.Duration
	fileEvents   <-chan struct{}
	sync         func() (bool, error)
}

// run syncs once, and then again after each file event or poll interval,
// until the context is cancelled. Failed syncs are logged and retried on the
// next trigger.
func (w watcher) run(ctx context.Context) {
	for {
		changed, err := w.sync()
		if err != nil {
			log.WithError(err).Error("Sync failed")
		} else {
			log.WithField("changed", changed).Debug("Synced")
		}

		select {
		case <-ctx.Done():
			return
		case <-w.fileEvents:
		case <-w.clock.After(w.pollInterval):
		}
	}
}
