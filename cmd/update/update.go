package update

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

type flags struct {
	source  string
	target  string
	root    string
	all     bool
	noColor bool
}

// New creates a new `update` command.
func New() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a single target path from a source path",
		Long: "Makes the target path match the source path. Directories are " +
			"created, and files are copied if the source is at least as new " +
			"as the target.\n\n" +
			"If no source is given, or the source doesn't exist, the target is removed.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(afero.NewOsFs(), os.Stdout, f); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "The path to update from.")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "The path to update.")
	cmd.Flags().StringVar(&f.root, "root", "", "The directory that the paths are relative to.")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false,
		"Copy the file, even if the target is newer than the source.")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output.")
	return cmd
}

func run(fs afero.Fs, out io.Writer, f flags) error {
	if f.target == "" {
		return errors.NewFriendlyError("A target path is required. Set it with --target.")
	}

	opts := overlay.Options{RootDir: f.root, All: f.all}
	logger := util.NewActionLogger(out, !f.noColor)
	updated, err := overlay.UpdatePath(fs, f.source, f.target, opts, logger)
	if err != nil {
		return errors.WithContext(err, "update")
	}

	if !updated {
		fmt.Fprintln(out, "Already up to date.")
	}
	return nil
}
