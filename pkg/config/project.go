package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// ManifestName is the name of the file that marks a project root and
// describes how its output directory is assembled.
const ManifestName = "overlay.yaml"

// InitialProjectConfigVersion is the first version of the project manifest.
// Manifests that do not specify a version default to this version.
const InitialProjectConfigVersion = "v1alpha1"

// SupportedProjectConfigVersion is the manifest version understood by this
// binary.
const SupportedProjectConfigVersion = "v1alpha1"

// Project describes the directories that are overlaid to produce a project's
// output directory.
type Project struct {
	Version string `json:"version,omitempty"`

	// Sources are overlaid in order, so files in later sources replace files
	// at the same path in earlier sources.
	Sources []string `json:"sources"`
	Target  string   `json:"target"`

	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`

	// All copies every file, even ones that are older than their target.
	All bool `json:"all,omitempty"`

	// Only populated and consumed by overlaysync. Never set by user.
	path string
}

// GetPath returns the path the project was parsed from.
func (p Project) GetPath() string {
	return p.path
}

func (p Project) getVersion() string {
	return p.Version
}

// ParseProject parses the manifest in the directory `dir`. Relative source
// and target paths are resolved relative to `dir`.
func ParseProject(dir string) (Project, error) {
	path := filepath.Join(dir, ManifestName)
	project := Project{
		path:    path,
		Version: InitialProjectConfigVersion,
	}
	if err := parseConfig(path, &project, SupportedProjectConfigVersion); err != nil {
		return Project{}, errors.WithContext(err, "parse")
	}

	if project.Target == "" {
		return Project{}, errors.NewFriendlyError(
			"The project defined in %q does not have a target set.\n"+
				"The target field is required, and names the directory "+
				"that the sources are synced into.", path)
	}

	if len(project.Sources) == 0 {
		return Project{}, errors.NewFriendlyError(
			"The project defined in %q does not have any sources.\n"+
				"The sources field lists the directories that are "+
				"overlaid onto the target, in order.", path)
	}

	target, err := resolvePath(dir, project.Target)
	if err != nil {
		return Project{}, errors.WithContext(err, "resolve target")
	}
	project.Target = target

	var sources []string
	for _, source := range project.Sources {
		resolved, err := resolvePath(dir, source)
		if err != nil {
			return Project{}, errors.WithContext(err, "resolve source")
		}
		sources = append(sources, resolved)
	}
	project.Sources = sources

	return project, nil
}

// resolvePath expands ~'s in `path`, and evaluates relative paths relative to
// `dir`.
func resolvePath(dir, path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.WithContext(err, "expand homedir")
	}

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(dir, expanded)
	}
	return filepath.Clean(expanded), nil
}
