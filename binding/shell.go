package binding

import (
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Shell runs execute actions with /bin/sh without waiting for them.
type Shell struct {
	Path string
	log  *logrus.Entry
}

func NewShell(log *logrus.Entry) *Shell {
	return &Shell{Path: "/bin/sh", log: log}
}

func (s *Shell) Run(command string) {
	cmd := exec.Command(s.Path, "-c", command)
	if err := cmd.Start(); err != nil {
		s.log.WithFields(logrus.Fields{"command": command, "err": err}).Error("Execute action failed to start")
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.WithFields(logrus.Fields{"command": command, "err": err}).Warn("Execute action failed")
		}
	}()
}
