package util

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sidkik/overlaysync/pkg/config"
	"github.com/sidkik/overlaysync/pkg/errors"
	"github.com/sidkik/overlaysync/pkg/overlay"
)

// SyncFlags are the flags shared by the commands that sync a whole
// directory.
type SyncFlags struct {
	Root    string
	Target  string
	All     bool
	Include []string
	Exclude []string
	NoColor bool
}

// Register adds the flags to `cmd`.
func (f *SyncFlags) Register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.Root, "root", "",
		"The directory that source and target paths are relative to. "+
			"Without explicit sources, the project manifest is searched for from here.")
	flags.StringVarP(&f.Target, "target", "t", "", "The directory to sync into.")
	flags.BoolVarP(&f.All, "all", "a", false,
		"Copy every file, even if the target is newer than the source.")
	flags.StringArrayVar(&f.Include, "include", nil,
		"Only sync paths matching this glob. '*' stays within a path segment, "+
			"'**' crosses segments, and a leading '**/' also matches the top level. "+
			"May be repeated.")
	flags.StringArrayVar(&f.Exclude, "exclude", nil,
		"Don't sync paths matching this glob. May be repeated.")
	flags.BoolVar(&f.NoColor, "no-color", false, "Disable colored output.")
}

// SyncPlan describes a fully resolved directory sync.
type SyncPlan struct {
	Sources []string
	Target  string
	Options overlay.Options
}

// TargetPath returns the target directory with the root directory applied.
func (plan SyncPlan) TargetPath() string {
	return filepath.Join(plan.Options.RootDir, plan.Target)
}

// SourcePaths returns the source directories with the root directory
// applied.
func (plan SyncPlan) SourcePaths() (paths []string) {
	for _, source := range plan.Sources {
		paths = append(paths, filepath.Join(plan.Options.RootDir, source))
	}
	return paths
}

// Plan resolves the directories to sync. Sources passed as arguments are used
// along with the --target flag. Otherwise, the project manifest is used, and
// any filter or target flags override the manifest's settings.
func (f SyncFlags) Plan(args []string) (SyncPlan, error) {
	opts := overlay.Options{
		RootDir:      f.Root,
		All:          f.All,
		IncludeGlobs: f.Include,
		ExcludeGlobs: f.Exclude,
	}

	if len(args) > 0 {
		if f.Target == "" {
			return SyncPlan{}, errors.NewFriendlyError(
				"A target directory is required when sources are passed as arguments.\n" +
					"Set it with --target.")
		}
		return SyncPlan{Sources: args, Target: f.Target, Options: opts}, nil
	}

	root, err := config.FindProjectRoot(f.Root)
	if err != nil {
		if err == config.ErrProjectRootNotFound {
			return SyncPlan{}, errors.NewFriendlyError(
				"No source directories were given, and no %s was found in %s.\n"+
					"Either pass the source directories as arguments, or run "+
					"from within a project.", config.ManifestName, describeSearchDir(f.Root))
		}
		return SyncPlan{}, errors.WithContext(err, "find project root")
	}

	project, err := config.ParseProject(root)
	if err != nil {
		return SyncPlan{}, errors.WithContext(err, "parse project")
	}

	// The manifest's paths are already resolved.
	opts.RootDir = ""
	opts.All = opts.All || project.All
	if len(opts.IncludeGlobs) == 0 {
		opts.IncludeGlobs = project.Include
	}
	if len(opts.ExcludeGlobs) == 0 {
		opts.ExcludeGlobs = project.Exclude
	}

	target := project.Target
	if f.Target != "" {
		target = filepath.Join(f.Root, f.Target)
	}
	return SyncPlan{Sources: project.Sources, Target: target, Options: opts}, nil
}

func describeSearchDir(dir string) string {
	if dir == "" {
		return "the working directory or its parents"
	}
	return fmt.Sprintf("%q or its parents", dir)
}
