package sync

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sidkik/overlaysync/cmd/util"
	"github.com/sidkik/overlaysync/pkg/errors"
	"github.com/sidkik/overlaysync/pkg/overlay"
)

// New creates a new `sync` command.
func New() *cobra.Command {
	var flags util.SyncFlags
	cmd := &cobra.Command{
		Use:   "sync [SOURCE...]",
		Short: "Overlay the source directories onto the target directory",
		Long: "Overlays the source directories onto the target directory, in order, " +
			"so that files in later sources take precedence over files at the " +
			"same path in earlier sources.\n\n" +
			"Files in the target that aren't in any source are removed. Files " +
			"that are newer in the target than in the source are left alone " +
			"unless --all is set.\n\n" +
			"If no sources are given, they're read from the " +
			"overlay.yaml in the current project.",
		Run: func(_ *cobra.Command, args []string) {
			if err := run(afero.NewOsFs(), os.Stdout, flags, args); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(cmd)
	return cmd
}

func run(fs afero.Fs, out io.Writer, flags util.SyncFlags, args []string) error {
	plan, err := flags.Plan(args)
	if err != nil {
		return err
	}

	logger := util.NewActionLogger(out, !flags.NoColor)
	changed, err := overlay.MergeAndUpdateDir(fs, plan.Sources, plan.Target, plan.Options, logger)
	if err != nil {
		if friendlyErr := describeNotFound(plan, err); friendlyErr != nil {
			return friendlyErr
		}
		return errors.WithContext(err, "sync")
	}

	if !changed {
		fmt.Fprintln(out, "Already up to date.")
	}
	return nil
}

// describeNotFound returns a friendly error if `err` was caused by a missing
// source directory, or a target that isn't a directory. Other paths that
// aren't found, such as ones removed during the sync, are left as is.
func describeNotFound(plan util.SyncPlan, err error) error {
	notFound, ok := errors.RootCause(err).(errors.FileNotFound)
	if !ok {
		return nil
	}

	for _, source := range plan.SourcePaths() {
		if notFound.Path == source {
			return errors.NewFriendlyError(
				"Source directory %q does not exist.\n"+
					"Check that the sources are spelled correctly, and that "+
					"they're relative to the right root.", notFound.Path)
		}
	}

	if notFound.Path == plan.TargetPath() {
		return errors.NewFriendlyError(
			"Target %q exists, but isn't a directory.\n"+
				"Remove it, or choose a different target.", notFound.Path)
	}
	return nil
}
