package duet

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Status is the outcome of a single Step.
type Status int

const (
	StatusRunning    = Status(0) // running
	StatusOutput     = Status(1) // output
	StatusAwaiting   = Status(2) // awaiting
	StatusTerminated = Status(3) // terminated
)

var statusNames = [...]string{"running", "output", "awaiting", "terminated"}

func (st Status) String() string {
	if st < 0 || int(st) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(st))
	}
	return statusNames[st]
}

// Blocked returns true if the program can not make progress by itself.
func (st Status) Blocked() bool {
	return st == StatusAwaiting || st == StatusTerminated
}

// Program is one running instance of a Listing.
type Program struct {
	Verbose bool // Set to enable verbose logging.

	Id       int64            // Program id, preset into register 'p'.
	Ip       int              // Current instruction pointer.
	Register [REGISTERS]int64 // Register bank.
	Input    Queue            // Values received from the peer.
	Listing  *Listing         // Program text.

	Sent     int      // Number of values sent.
	Ticks    int      // Number of instructions executed.
	Executed [OPS]int // Per-operation execution counts.

	terminated bool
}

// NewProgram creates a program instance with the given id.
func NewProgram(ls *Listing, id int64) (prog *Program) {
	prog = &Program{
		Id:      id,
		Listing: ls,
	}
	prog.Register['p'-'a'] = id

	return
}

// String returns the current program state as a string.
func (prog *Program) String() string {
	return fmt.Sprintf("p%d ip=%d queued=%d sent=%d", prog.Id, prog.Ip, prog.Input.Len(), prog.Sent)
}

// Value returns the current value of an operand.
func (prog *Program) Value(o Operand) int64 {
	if o.IsRegister {
		return prog.Register[o.Register]
	}
	return o.Value
}

// Current returns the instruction at the instruction pointer.
func (prog *Program) Current() (ins Instruction, ok bool) {
	if prog.terminated || prog.Ip < 0 || prog.Ip >= len(prog.Listing.Instructions) {
		return
	}
	return prog.Listing.Instructions[prog.Ip], true
}

// Skip advances the instruction pointer past the current instruction
// without executing it.
func (prog *Program) Skip() {
	prog.Ip++
}

// Step executes a single instruction.
//
// A receive with an empty input queue returns StatusAwaiting and leaves the
// instruction pointer in place so the receive is retried on the next Step.
// Once the instruction pointer leaves the program every Step returns
// StatusTerminated.
func (prog *Program) Step() (status Status, value int64, err error) {
	ins, ok := prog.Current()
	if !ok {
		prog.terminated = true
		status = StatusTerminated
		return
	}

	if prog.Verbose {
		log.Debugf("p%d %03x: %v", prog.Id, prog.Ip, ins)
	}

	next_ip := prog.Ip + 1
	x := &prog.Register[ins.X.Register]

	switch ins.Op {
	case OP_SND:
		status = StatusOutput
		value = prog.Value(ins.X)
		prog.Sent++
	case OP_SET:
		*x = prog.Value(ins.Y)
	case OP_ADD:
		*x += prog.Value(ins.Y)
	case OP_SUB:
		*x -= prog.Value(ins.Y)
	case OP_MUL:
		*x *= prog.Value(ins.Y)
	case OP_MOD:
		y := prog.Value(ins.Y)
		if y == 0 {
			err = ErrModuloZero
			return
		}
		*x %= y
	case OP_RCV:
		recv, ok := prog.Input.Pop()
		if !ok {
			// Don't advance to next IP.
			status = StatusAwaiting
			return
		}
		*x = recv
	case OP_JGZ:
		if prog.Value(ins.X) > 0 {
			next_ip = prog.Ip + int(prog.Value(ins.Y))
		}
	case OP_JNZ:
		if prog.Value(ins.X) != 0 {
			next_ip = prog.Ip + int(prog.Value(ins.Y))
		}
	}

	prog.Ip = next_ip
	prog.Ticks++
	prog.Executed[ins.Op]++

	return
}

// Run steps the program until it blocks or terminates.
// Sent values are dropped.
func (prog *Program) Run() (status Status, err error) {
	for {
		status, _, err = prog.Step()
		if err != nil || status.Blocked() {
			return
		}
	}
}
