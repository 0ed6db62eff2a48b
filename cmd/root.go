package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	syncCmd "github.com/sidkik/overlaysync/cmd/sync"
	"github.com/sidkik/overlaysync/cmd/update"
	"github.com/sidkik/overlaysync/cmd/util"
	"github.com/sidkik/overlaysync/cmd/version"
	"github.com/sidkik/overlaysync/cmd/watch"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "OVERLAYSYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:          "overlaysync",
		Short:        "Assemble a directory from an ordered stack of source directories",
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		syncCmd.New(),
		update.New(),
		watch.New(),
		version.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
