package queuemailercmd

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// trapSignals cancels the running command on SIGINT or SIGTERM. The command returns and run
// performs the shutdown, so the outbox is flushed only after nothing else is using the database.
// A second signal, or SIGQUIT, exits immediately.
func trapSignals(a *app) {
	logger := a.ctx.Logger()

	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		canceled := false
		for sig := range sigchan {
			if sig == syscall.SIGQUIT || canceled {
				logger.Info("quitting process immediately", zap.String("signal", sig.String()))
				os.Exit(ExitCodeForceQuit)
			}

			logger.Info("canceling command, outbox is flushed on exit", zap.String("signal", sig.String()))
			canceled = true
			a.ctx.Cancel()
		}
	}()
}
