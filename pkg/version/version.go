package version

// EmptyValue is the version reported by binaries that weren't built with an
// explicit version, such as unit tests and `go run`.
const EmptyValue = "set-by-make"

// Version is the git tag of the release. It's set at build time with
// `-ldflags "-X github.com/sidkik/overlaysync/pkg/version.Version=<tag>"`.
var Version = EmptyValue

// IsRelease returns whether the binary was built with an explicit version.
func IsRelease() bool {
	return Version != EmptyValue
}
