package device

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Program is an assembled device program.
type Program struct {
	Bind         int           // Register bound to the instruction pointer, or -1.
	Instructions []Instruction // Instructions, indexed by instruction pointer.
	Lines        []int         // Source line of each instruction.
}

// LineNo returns the source line for an instruction pointer, or 0.
func (prog *Program) LineNo(ip uint64) int {
	if ip >= uint64(len(prog.Lines)) {
		return 0
	}
	return prog.Lines[ip]
}

// Device is the simulation context for a single program run.
type Device struct {
	Verbose bool // Set to enable verbose logging.

	Ip       uint64            // Current instruction pointer.
	Register [REGISTERS]uint64 // Register bank.

	Ticks int // Instructions executed.
}

// NewDevice creates a device with a zeroed register file.
func NewDevice() (dev *Device) {
	dev = &Device{}
	return
}

// String returns the current device state as a string.
func (dev *Device) String() (text string) {
	regs := make([]string, 0, REGISTERS)
	for n, val := range dev.Register {
		regs = append(regs, fmt.Sprintf("r%d=%d", n, val))
	}
	return fmt.Sprintf("ip=%d %v", dev.Ip, strings.Join(regs, " "))
}

// Reset the device state.
func (dev *Device) Reset() {
	clear(dev.Register[:])
	dev.Ip = 0
	dev.Ticks = 0
}

// Tick executes a single instruction of the program.
// Returns done when the instruction pointer is outside of the program.
func (dev *Device) Tick(prog *Program) (done bool, err error) {
	if dev.Ip >= uint64(len(prog.Instructions)) {
		done = true
		return
	}

	ins := prog.Instructions[dev.Ip]
	if dev.Verbose {
		log.Debugf("%03x: %v", dev.Ip, ins)
	}

	if prog.Bind >= 0 {
		dev.Register[prog.Bind] = dev.Ip
	}

	err = Execute(&dev.Register, ins)
	if err != nil {
		return
	}

	if prog.Bind >= 0 {
		dev.Ip = dev.Register[prog.Bind]
	}
	dev.Ip += 1
	dev.Ticks += 1

	return
}

// Run executes the program until the instruction pointer leaves it.
func (dev *Device) Run(prog *Program) (err error) {
	for done, err := dev.Tick(prog); !done; done, err = dev.Tick(prog) {
		if err != nil {
			return err
		}
	}

	if dev.Verbose {
		log.Debugf("device: halted after %d ticks: %v", dev.Ticks, dev)
	}

	return
}

// RunProgram assembles and runs a program from zeroed registers, and
// returns the value of register 0.
func RunProgram(text string) (value uint64, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(text))
	if err != nil {
		return
	}

	dev := NewDevice()
	err = dev.Run(prog)
	if err != nil {
		return
	}

	value = dev.Register[0]
	return
}

// HaltingValues runs the program, and each time the instruction at
// haltingIp is about to execute records the value of haltingRegister.
//
// Recording stops at the first value that was already seen (which is not
// included), once limit values have been recorded, or when the program
// halts on its own.
func (dev *Device) HaltingValues(prog *Program, haltingIp uint64, haltingRegister int, limit int) (values []uint64, err error) {
	if haltingRegister < 0 || haltingRegister >= REGISTERS {
		err = ErrRegisterInvalid
		return
	}

	seen := make(map[uint64]bool)

	for len(values) < limit {
		if dev.Ip == haltingIp {
			value := dev.Register[haltingRegister]
			if seen[value] {
				if dev.Verbose {
					log.Debugf("device: halting value %d repeats", value)
				}
				return
			}
			seen[value] = true
			values = append(values, value)
		}

		var done bool
		done, err = dev.Tick(prog)
		if done || err != nil {
			return
		}
	}

	return
}
