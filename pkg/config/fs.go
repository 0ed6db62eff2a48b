package config

import (
	"os"

	"github.com/spf13/afero"
)

// fs is used for mock tests. It will be overridden by afero.NewMemMapFs()
// in the tests.
var fs = afero.NewOsFs()

// getwd is overridden in tests so that FindProjectRoot doesn't depend on the
// directory the tests run in.
var getwd = os.Getwd
