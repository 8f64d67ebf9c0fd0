package duet

import (
	log "github.com/sirupsen/logrus"
)

// Recover runs a single program with sound card semantics: snd
// plays a frequency and 'rcv X' recovers the last frequency played once X
// is not zero. A receive of zero is skipped.
func Recover(ls *Listing) (frequency int64, err error) {
	prog := NewProgram(ls, 0)

	played := false
	for {
		var status Status
		var value int64
		status, value, err = prog.Step()
		if err != nil {
			return
		}

		switch status {
		case StatusOutput:
			frequency = value
			played = true
		case StatusAwaiting:
			ins, _ := prog.Current()
			if prog.Value(ins.X) != 0 && played {
				log.Debugf("duet: recovered %d at ip %d", frequency, prog.Ip)
				return
			}
			prog.Skip()
		case StatusTerminated:
			frequency = 0
			err = ErrNoRecovery
			return
		}
	}
}
