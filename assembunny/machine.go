package assembunny

import (
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Status is the machine state after a Tick.
type Status int

const (
	StatusRunning     = Status(0) // running
	StatusHalted      = Status(1) // halted
	StatusClockStable = Status(2) // clock stable
	StatusClockBroken = Status(3) // clock broken
	StatusTickLimit   = Status(4) // tick limit
)

var statusNames = [...]string{"running", "halted", "clock stable", "clock broken", "tick limit"}

func (st Status) String() string {
	if st < 0 || int(st) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(st))
	}
	return statusNames[st]
}

// snapshot is the machine state just after a valid transmission.
type snapshot struct {
	ip       int
	register [REGISTERS]int64
}

// Machine is the simulation context for a single program run.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program  []Instruction    // Owned copy of the program; rewritten by tgl.
	Ip       int              // Current instruction pointer.
	Register [REGISTERS]int64 // Register bank.

	Ticks    int // Instructions executed.
	MaxTicks int // If not zero, stop after this many instructions.

	Signal []int64 // Transmitted clock values.

	seen map[snapshot]bool
}

// NewMachine creates a machine running a private copy of the program.
func NewMachine(program []Instruction) (m *Machine) {
	m = &Machine{
		Program: slices.Clone(program),
	}
	return
}

// String returns the current machine state as a string.
func (m *Machine) String() string {
	regs := make([]string, 0, REGISTERS)
	for n, val := range m.Register {
		regs = append(regs, fmt.Sprintf("%c=%d", 'a'+n, val))
	}
	return fmt.Sprintf("ip=%d %v", m.Ip, strings.Join(regs, " "))
}

// Reset clears the registers, the clock history and the instruction
// pointer. The program keeps any toggles already applied to it.
func (m *Machine) Reset() {
	clear(m.Register[:])
	m.Ip = 0
	m.Ticks = 0
	m.Signal = nil
	m.seen = nil
}

// Value returns the current value of an operand.
func (m *Machine) Value(o Operand) int64 {
	if o.IsRegister {
		return m.Register[o.Register]
	}
	return o.Value
}

// transmit validates a clock value.
func (m *Machine) transmit(value int64) (status Status) {
	if value != 0 && value != 1 {
		return StatusClockBroken
	}
	if len(m.Signal) > 0 && m.Signal[len(m.Signal)-1] == value {
		return StatusClockBroken
	}
	m.Signal = append(m.Signal, value)

	if m.seen == nil {
		m.seen = make(map[snapshot]bool)
	}
	state := snapshot{ip: m.Ip, register: m.Register}
	if m.seen[state] {
		return StatusClockStable
	}
	m.seen[state] = true

	return StatusRunning
}

// Tick executes a single instruction.
func (m *Machine) Tick() (status Status) {
	if m.Ip < 0 || m.Ip >= len(m.Program) {
		return StatusHalted
	}

	if m.MaxTicks > 0 && m.Ticks >= m.MaxTicks {
		return StatusTickLimit
	}

	ins := m.Program[m.Ip]
	if m.Verbose {
		log.Debugf("%03x: %v", m.Ip, ins)
	}

	next_ip := m.Ip + 1

	switch ins.Op {
	case OP_CPY:
		m.Register[ins.Y.Register] = m.Value(ins.X)
	case OP_INC:
		m.Register[ins.X.Register]++
	case OP_DEC:
		m.Register[ins.X.Register]--
	case OP_JNZ:
		if m.Value(ins.X) != 0 {
			next_ip = m.Ip + int(m.Value(ins.Y))
			if next_ip < 0 {
				next_ip = len(m.Program)
			}
		}
	case OP_TGL:
		target := m.Ip + int(m.Value(ins.X))
		if target >= 0 && target < len(m.Program) {
			if m.Verbose {
				log.Debugf("%03x: toggle %03x %v", m.Ip, target, m.Program[target])
			}
			m.Program[target] = m.Program[target].Toggle()
		}
	case OP_OUT:
		status = m.transmit(m.Value(ins.X))
		if status != StatusRunning {
			if m.Verbose {
				log.Debugf("assembunny: %v after %d values", status, len(m.Signal))
			}
			return
		}
	case OP_NOP:
		// pass
	}

	m.Ip = next_ip
	m.Ticks++

	return
}

// Run ticks the machine until it stops running.
func (m *Machine) Run() (status Status) {
	for status = m.Tick(); status == StatusRunning; status = m.Tick() {
	}

	if m.Verbose {
		log.Debugf("assembunny: %v after %d ticks: %v", status, m.Ticks, m)
	}

	return
}

// Execute runs a program with the given initial registers, and returns the
// final value of register a.
func Execute(ls *Listing, register [REGISTERS]int64, maxTicks int) (a int64, err error) {
	m := NewMachine(ls.Instructions)
	m.Register = register
	m.MaxTicks = maxTicks

	switch m.Run() {
	case StatusClockBroken:
		err = ErrClockBroken
	case StatusTickLimit:
		err = ErrTickLimit
	}

	a = m.Register[0]
	return
}

// FindClock returns the lowest initial value of register a, below limit,
// for which the program transmits a stable 0, 1, 0, 1 ... clock signal.
func FindClock(ls *Listing, limit int64, maxTicks int) (a int64, err error) {
	for a = range limit {
		m := NewMachine(ls.Instructions)
		m.Register[0] = a
		m.MaxTicks = maxTicks
		if m.Run() == StatusClockStable {
			return
		}
	}

	a = 0
	err = ErrClockNotFound
	return
}
