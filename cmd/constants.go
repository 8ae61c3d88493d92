package queuemailercmd

const (
	ExitCodeFailedStartup = 1
	ExitCodeForceQuit     = 2
)
