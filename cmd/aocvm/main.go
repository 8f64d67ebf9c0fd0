// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/aocvm/config"
	"github.com/ezrec/aocvm/emulator"
	"github.com/ezrec/aocvm/translate"
)

// loadConfig reads the --config file, if any, and applies --verbose.
func loadConfig(cmd *cobra.Command) (cfg *config.Config, err error) {
	path, _ := cmd.Flags().GetString("config")
	if len(path) == 0 {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(path)
		if err != nil {
			return
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	return
}

// openInput opens the program file argument; '-' or nothing is stdin.
func openInput(cmd *cobra.Command, args []string) (name string, input io.ReadCloser, err error) {
	if len(args) == 0 || args[0] == "-" {
		name = "-"
		stdin := cmd.InOrStdin()
		if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			log.Info("reading program from the terminal, end with ^D")
		}
		input = io.NopCloser(stdin)
		return
	}

	name = args[0]
	input, err = os.Open(name)
	return
}

// runKind runs a program of a machine kind, after letting the command's
// flags override the configuration.
func runKind(cmd *cobra.Command, args []string, kind string, override func(cmd *cobra.Command, cfg *config.Config)) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return
	}

	override(cmd, cfg)
	err = cfg.Validate()
	if err != nil {
		return
	}

	name, input, err := openInput(cmd, args)
	if err != nil {
		return
	}
	defer input.Close()

	emu := emulator.NewEmulator(cfg)
	res, err := emu.Run(kind, input)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
		return
	}

	if cfg.Verbose {
		log.Debugf("%v: %v ticks", name, translate.Number(int64(res.Ticks)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), res)
	return
}

func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device [flags] [program.rm]",
		Short: "Run a register machine program.",
		Long: `Run a register machine program. The 'run' mode prints register 0,
'halting' prints the first and last halting values, and 'samples'
resolves the opcode numbers from the samples before running the
numbered program that follows them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKind(cmd, args, "device", func(cmd *cobra.Command, cfg *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("mode") {
					cfg.Device.Mode, _ = flags.GetString("mode")
				}
				if flags.Changed("halting-ip") {
					cfg.Device.HaltingIp, _ = flags.GetUint64("halting-ip")
				}
				if flags.Changed("halting-register") {
					cfg.Device.HaltingRegister, _ = flags.GetInt("halting-register")
				}
				if flags.Changed("limit") {
					cfg.Device.Limit, _ = flags.GetInt("limit")
				}
			})
		},
	}

	cmd.Flags().StringP("mode", "m", "run", "run, halting or samples")
	cmd.Flags().Uint64("halting-ip", 0, "instruction watched in halting mode")
	cmd.Flags().Int("halting-register", 0, "register sampled in halting mode")
	cmd.Flags().Int("limit", 0, "most halting values to collect")

	return cmd
}

func newDuetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duet [flags] [program.duet]",
		Short: "Run a dual program listing.",
		Long: `Run a dual program listing. The 'pair' mode prints the number of
values sent by program 1, 'sound' prints the recovered frequency, and
'coprocessor' prints the number of mul instructions executed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKind(cmd, args, "duet", func(cmd *cobra.Command, cfg *config.Config) {
				if cmd.Flags().Changed("mode") {
					cfg.Duet.Mode, _ = cmd.Flags().GetString("mode")
				}
			})
		},
	}

	cmd.Flags().StringP("mode", "m", "pair", "pair, sound or coprocessor")

	return cmd
}

func newAssembunnyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assembunny [flags] [program.bunny]",
		Short: "Run a self-modifying assembunny program.",
		Long: `Run a self-modifying assembunny program. The 'run' mode prints
register a, and 'clock' prints the lowest initial value of register a
that produces a stable clock signal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKind(cmd, args, "assembunny", func(cmd *cobra.Command, cfg *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("mode") {
					cfg.Assembunny.Mode, _ = flags.GetString("mode")
				}
				if flags.Changed("registers") {
					cfg.Assembunny.Registers, _ = flags.GetInt64Slice("registers")
				}
				if flags.Changed("clock-limit") {
					cfg.Assembunny.ClockLimit, _ = flags.GetInt64("clock-limit")
				}
				if flags.Changed("max-ticks") {
					cfg.Assembunny.MaxTicks, _ = flags.GetInt("max-ticks")
				}
			})
		},
	}

	cmd.Flags().StringP("mode", "m", "run", "run or clock")
	cmd.Flags().Int64Slice("registers", nil, "initial values of registers a to d")
	cmd.Flags().Int64("clock-limit", 0, "search bound in clock mode")
	cmd.Flags().Int("max-ticks", 0, "stop after this many instructions (0 is unlimited)")

	return cmd
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "aocvm",
		Short:        "Register machine interpreters.",
		Long:         "Interpreters for the device, duet and assembunny register machines.",
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "trace every executed instruction")
	root.PersistentFlags().StringP("config", "c", "", "TOML run configuration")

	root.AddCommand(newDeviceCmd(), newDuetCmd(), newAssembunnyCmd())

	return root
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
