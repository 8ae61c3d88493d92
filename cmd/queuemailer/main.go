package main

import queuemailercmd "go.lumeweb.com/queuemailer/cmd"

func main() {
	queuemailercmd.Main()
}
