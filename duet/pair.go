package duet

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Pair is two programs that send to each other.
type Pair struct {
	Verbose  bool
	Programs [2]*Program

	Rounds  int      // Number of scheduling rounds run.
	Faulted *Program // Program whose step failed, if any.
}

// NewPair creates programs 0 and 1 of the listing.
func NewPair(ls *Listing) (pair *Pair) {
	pair = &Pair{
		Programs: [2]*Program{NewProgram(ls, 0), NewProgram(ls, 1)},
	}
	return
}

// Round steps program 0 then program 1 once each, delivering output to
// the peer as soon as it is produced.
// Returns true if both programs were blocked.
func (pair *Pair) Round() (deadlock bool, err error) {
	blocked := 0
	for n, prog := range pair.Programs {
		prog.Verbose = pair.Verbose

		var status Status
		var value int64
		status, value, err = prog.Step()
		if err != nil {
			pair.Faulted = prog
			return
		}

		switch {
		case status == StatusOutput:
			pair.Programs[1-n].Input.Push(value)
		case status.Blocked():
			blocked++
		}
	}

	pair.Rounds++
	deadlock = blocked == len(pair.Programs)

	return
}

// Run schedules both programs until they are blocked in the same round.
func (pair *Pair) Run() (err error) {
	for {
		var deadlock bool
		deadlock, err = pair.Round()
		if err != nil || deadlock {
			break
		}
	}

	if pair.Verbose {
		log.Debugf("duet: stopped after %d rounds: %v, %v", pair.Rounds, pair.Programs[0], pair.Programs[1])
	}

	return
}

// SendCount runs a pair of the program text, and returns how many values
// program 1 sent before both programs blocked.
func SendCount(text string) (count int, err error) {
	ls, err := Parse(strings.NewReader(text))
	if err != nil {
		return
	}

	pair := NewPair(ls)
	err = pair.Run()
	if err != nil {
		return
	}

	count = pair.Programs[1].Sent
	return
}
