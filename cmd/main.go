package queuemailercmd

import (
	"os"
)

func Main() {
	rootCmd := newRootCmd(true)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeFailedStartup)
	}
}
