// Command dmgboy runs a Game Boy ROM image against the SM83 core with
// no video, audio or input — it exists to drive the core against test
// ROMs that report results over the serial port.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/mkrause/dmgboy/internal/addr"
	"github.com/mkrause/dmgboy/internal/bus"
	"github.com/mkrause/dmgboy/internal/cpu"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgboy"
	app.Usage = "run a Game Boy ROM against the headless SM83 core"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "steps",
			Value: 0,
			Usage: "number of instructions to execute (0 runs until a fatal error)",
		},
		cli.BoolFlag{
			Name:  "skip-boot-values",
			Usage: "leave the register file zeroed instead of seeding DMG post-boot values",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgboy exited with an error", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("usage: dmgboy [options] <rom-file>")
	}

	romPath := ctx.Args().Get(0)
	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	core := newCore(data, !ctx.Bool("skip-boot-values"))

	steps := ctx.Int("steps")
	for i := 0; steps == 0 || i < steps; i++ {
		if err := core.Step(); err != nil {
			return fmt.Errorf("execution stopped after %d steps: %w", i, err)
		}
	}

	return nil
}

// newCore wires a bus whose interrupt requests feed back into the same
// bus's IF register, loads rom at address 0, and returns a core reset
// to the cartridge entry point.
func newCore(rom []byte, seedPostBootValues bool) *cpu.Core {
	var b *bus.Bus
	b = bus.New(func(i addr.Interrupt) {
		flags := b.Read(addr.IF)
		b.WriteU8(addr.IF, flags|(1<<i.Bit()))
	})
	b.LoadROM(rom)

	core := cpu.New(b)
	core.Reset(seedPostBootValues)
	return core
}
