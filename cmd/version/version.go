package version

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/overlaysync/pkg/version"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of overlaysync.",
		Run: func(_ *cobra.Command, _ []string) {
			run(os.Stdout)
		},
	}
}

func run(out io.Writer) {
	if !version.IsRelease() {
		fmt.Fprintln(out, "overlaysync version: development build")
		return
	}
	fmt.Fprintf(out, "overlaysync version: %s\n", version.Version)
}
