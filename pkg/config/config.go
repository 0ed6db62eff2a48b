package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/sidkik/overlaysync/pkg/errors"
)

// parseErrTemplate is shown when a manifest isn't valid YAML, or doesn't fit
// the manifest schema. The parser's own message is included verbatim since
// it doesn't carry line information for schema errors.
const parseErrTemplate = "The manifest %q could not be parsed.\n" +
	"Common pitfalls include:\n" +
	" - Writing `sources` as a single string rather than a list\n" +
	" - Leaving globs that start with `*` unquoted, so YAML reads them as aliases\n" +
	" - Misspelled or extra fields\n\n" +
	"The parser reported:\n" +
	"%s"

type versioned interface {
	getVersion() string
}

type incompatibleVersionError struct {
	path, exp, actual string
}

func (err incompatibleVersionError) Error() string {
	return err.FriendlyMessage()
}

func (err incompatibleVersionError) FriendlyMessage() string {
	return fmt.Sprintf("The manifest %q has version %q, but this version "+
		"of overlaysync only understands %q.", err.path, err.actual, err.exp)
}

// parseConfig decodes the YAML file at `path` into `config`. The version is
// checked before unknown fields so that manifests written for a newer
// release report the version mismatch rather than the new fields.
func parseConfig(path string, config versioned, expVersion string) error {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.FileNotFound{Path: path}
		}
		return errors.WithContext(err, "read file")
	}

	if err := yaml.Unmarshal(contents, config); err != nil {
		return errors.NewFriendlyError(parseErrTemplate, path, err)
	}

	if actual := config.getVersion(); actual != expVersion {
		return incompatibleVersionError{path: path, exp: expVersion, actual: actual}
	}

	if err := yaml.UnmarshalStrict(contents, config, yaml.DisallowUnknownFields); err != nil {
		return errors.NewFriendlyError(parseErrTemplate, path, err)
	}
	return nil
}
