// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator loads and runs programs for each of the machines,
// as directed by a run configuration.
package emulator

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/aocvm/asm"
	"github.com/ezrec/aocvm/assembunny"
	"github.com/ezrec/aocvm/config"
	"github.com/ezrec/aocvm/device"
	"github.com/ezrec/aocvm/duet"
)

// Result of a program run.
type Result struct {
	Value  int64   // Primary result.
	Values []int64 // All collected values, in device halting mode.
	Ticks  int     // Instructions executed.
}

func (res *Result) String() string {
	if len(res.Values) == 0 {
		return fmt.Sprintf("%d", res.Value)
	}

	return fmt.Sprintf("%d %d", res.Values[0], res.Values[len(res.Values)-1])
}

// Emulator state.
type Emulator struct {
	Config *config.Config // Run configuration.
}

// NewEmulator creates a new emulator. A nil configuration selects the defaults.
func NewEmulator(cfg *config.Config) (emu *Emulator) {
	if cfg == nil {
		cfg = config.Default()
	}

	emu = &Emulator{
		Config: cfg,
	}

	return
}

// scanner returns a source scanner with the machine's register count
// predefined as REGISTERS.
func (emu *Emulator) scanner(registers int) (sc asm.Scanner) {
	sc.Verbose = emu.Config.Verbose
	sc.Predefine("REGISTERS", fmt.Sprintf("%d", registers))
	return
}

func errRuntime(lineno int, err error) error {
	if err == nil {
		return nil
	}
	return &ErrRuntime{LineNo: lineno, Err: err}
}

// RunDevice runs a register machine program.
func (emu *Emulator) RunDevice(input io.Reader) (res *Result, err error) {
	cfg := &emu.Config.Device

	var prog *device.Program

	switch cfg.Mode {
	case "run", "halting":
		as := &device.Assembler{Scanner: emu.scanner(device.REGISTERS)}
		prog, err = as.Parse(input)
	case "samples":
		var samples []device.Sample
		var codes []device.Code
		samples, codes, err = device.ParseSamples(input)
		if err != nil {
			return
		}
		var table map[uint64]device.Opcode
		table, err = device.Resolve(samples)
		if err != nil {
			return
		}
		if emu.Config.Verbose {
			log.Debugf("device: resolved %d opcodes from %d samples", len(table), len(samples))
		}
		prog, err = device.Translate(codes, table)
	default:
		err = fmt.Errorf("%w: %v", ErrModeInvalid, cfg.Mode)
	}
	if err != nil {
		return
	}

	dev := device.NewDevice()
	dev.Verbose = emu.Config.Verbose
	copy(dev.Register[:], cfg.Registers)

	res = &Result{}

	if cfg.Mode == "halting" {
		var values []uint64
		values, err = dev.HaltingValues(prog, cfg.HaltingIp, cfg.HaltingRegister, cfg.Limit)
		for _, value := range values {
			res.Values = append(res.Values, int64(value))
		}
		if len(values) > 0 {
			res.Value = int64(values[0])
		}
	} else {
		err = dev.Run(prog)
		res.Value = int64(dev.Register[0])
	}

	res.Ticks = dev.Ticks

	if err != nil {
		res = nil
		err = errRuntime(prog.LineNo(dev.Ip), err)
	}

	return
}

// RunDuet runs a dual program listing.
func (emu *Emulator) RunDuet(input io.Reader) (res *Result, err error) {
	cfg := &emu.Config.Duet

	as := &duet.Assembler{Scanner: emu.scanner(duet.REGISTERS)}
	ls, err := as.Parse(input)
	if err != nil {
		return
	}

	res = &Result{}

	switch cfg.Mode {
	case "pair":
		pair := duet.NewPair(ls)
		pair.Verbose = emu.Config.Verbose
		err = pair.Run()
		if err != nil && pair.Faulted != nil {
			err = errRuntime(ls.LineNo(pair.Faulted.Ip), err)
		}
		res.Value = int64(pair.Programs[1].Sent)
		res.Ticks = pair.Programs[0].Ticks + pair.Programs[1].Ticks
	case "sound":
		res.Value, err = duet.Recover(ls)
	case "coprocessor":
		prog := duet.NewProgram(ls, 0)
		prog.Verbose = emu.Config.Verbose
		_, err = prog.Run()
		if err != nil {
			err = errRuntime(ls.LineNo(prog.Ip), err)
		}
		res.Value = int64(prog.Executed[duet.OP_MUL])
		res.Ticks = prog.Ticks
	default:
		err = fmt.Errorf("%w: %v", ErrModeInvalid, cfg.Mode)
	}

	if err != nil {
		res = nil
	}

	return
}

// RunAssembunny runs a self-modifying program.
func (emu *Emulator) RunAssembunny(input io.Reader) (res *Result, err error) {
	cfg := &emu.Config.Assembunny

	as := &assembunny.Assembler{Scanner: emu.scanner(assembunny.REGISTERS)}
	ls, err := as.Parse(input)
	if err != nil {
		return
	}

	res = &Result{}

	switch cfg.Mode {
	case "run":
		m := assembunny.NewMachine(ls.Instructions)
		m.Verbose = emu.Config.Verbose
		m.MaxTicks = cfg.MaxTicks
		copy(m.Register[:], cfg.Registers)

		switch m.Run() {
		case assembunny.StatusClockBroken:
			err = errRuntime(ls.LineNo(m.Ip), assembunny.ErrClockBroken)
		case assembunny.StatusTickLimit:
			err = errRuntime(ls.LineNo(m.Ip), assembunny.ErrTickLimit)
		}

		res.Value = m.Register[0]
		res.Ticks = m.Ticks
	case "clock":
		res.Value, err = assembunny.FindClock(ls, cfg.ClockLimit, cfg.MaxTicks)
	default:
		err = fmt.Errorf("%w: %v", ErrModeInvalid, cfg.Mode)
	}

	if err != nil {
		res = nil
	}

	return
}

// Run runs a program of the named kind.
func (emu *Emulator) Run(kind string, input io.Reader) (res *Result, err error) {
	switch strings.ToLower(kind) {
	case "device":
		return emu.RunDevice(input)
	case "duet":
		return emu.RunDuet(input)
	case "assembunny":
		return emu.RunAssembunny(input)
	}

	err = fmt.Errorf("%w: %v", ErrModeInvalid, kind)
	return
}
