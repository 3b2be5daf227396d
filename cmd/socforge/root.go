package main

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gatefab/socforge/boards"
	"github.com/gatefab/socforge/datarecording"
	"github.com/gatefab/socforge/gateware"
	"github.com/gatefab/socforge/monitoring"
	"github.com/gatefab/socforge/soc"
)

type rootOptions struct {
	revision    string
	profilePath string
	outputDir   string

	build bool
	load  bool
	cable string

	dts     bool
	record  bool
	inspect bool
	open    bool
	port    int
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:   "socforge",
		Short: "Compose a SoC and drive the gateware build pipeline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.revision, "revision", "7.0",
		"Board revision")
	cmd.Flags().StringVar(&opts.profilePath, "profile", "",
		"TOML profile overriding the board defaults")
	cmd.Flags().StringVar(&opts.outputDir, "output",
		filepath.Join("build", "colorlight_5a_75b"),
		"Build output directory")
	cmd.Flags().BoolVar(&opts.build, "build", false,
		"Build the bitstream")
	cmd.Flags().BoolVar(&opts.load, "load", false,
		"Load the bitstream after building")
	cmd.Flags().StringVar(&opts.cable, "cable", "dirtyJtag",
		"JTAG probe model")
	cmd.Flags().BoolVar(&opts.dts, "dts", false,
		"Generate and compile the device tree")
	cmd.Flags().BoolVar(&opts.record, "record", false,
		"Record the composition and build run to SQLite")
	cmd.Flags().BoolVar(&opts.inspect, "inspect", false,
		"Serve the composed SoC for inspection and wait")
	cmd.Flags().BoolVar(&opts.open, "open", false,
		"Open the inspection page in a browser")
	cmd.Flags().IntVar(&opts.port, "port", 0,
		"Inspection server port (0 picks a random port)")

	return cmd
}

func run(logger zerolog.Logger, opts rootOptions) error {
	profile, err := boards.Colorlight5A75B(opts.revision)
	if err != nil {
		return err
	}

	if opts.profilePath != "" {
		profile, err = boards.LoadProfile(opts.profilePath, profile)
		if err != nil {
			return err
		}
	}

	descriptor, err := soc.MakeBuilderWithProfile(profile).Build()
	if err != nil {
		return err
	}

	logger.Info().
		Str("ident", descriptor.Ident).
		Str("device", descriptor.Device).
		Msg("composition frozen")

	var recorder *datarecording.SQLiteWriter
	if opts.record {
		if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
			return err
		}

		recorder = datarecording.New(
			filepath.Join(opts.outputDir, "socforge_"+xid.New().String()))
		datarecording.RecordComposition(recorder, descriptor)
	}

	orchestrator := gateware.NewOrchestrator(
		newSynthesizer(), newProgrammer(), logger)

	artifact, err := orchestrator.Build(
		descriptor, opts.outputDir, opts.build)

	if recorder != nil {
		datarecording.RecordBuildRun(recorder, xid.New().String(),
			descriptor, orchestrator.State(), artifact)
	}

	if err != nil {
		return err
	}

	if opts.dts {
		flow := gateware.NewDeviceTreeFlow()

		dtsPath, err := flow.Generate(descriptor, opts.outputDir)
		if err != nil {
			return err
		}

		dtbPath, err := flow.Compile(dtsPath)
		if err != nil {
			return err
		}

		logger.Info().Str("dtb", dtbPath).Msg("device tree compiled")
	}

	if opts.load {
		err = orchestrator.Load(artifact, opts.cable)

		if recorder != nil {
			datarecording.RecordBuildRun(recorder, xid.New().String(),
				descriptor, orchestrator.State(), artifact)
		}

		if err != nil {
			return err
		}
	}

	if opts.inspect {
		monitor := monitoring.NewMonitor()
		if opts.port != 0 {
			monitor.WithPortNumber(opts.port)
		}
		monitor.RegisterDescriptor(descriptor)
		monitor.RegisterOrchestrator(orchestrator)
		monitor.StartServer(opts.open)

		waitForInterrupt()
	}

	return nil
}

func newSynthesizer() gateware.ShellSynthesizer {
	s := gateware.NewShellSynthesizer()
	if shell := os.Getenv("SOCFORGE_SHELL"); shell != "" {
		s.Shell = shell
	}

	return s
}

func newProgrammer() gateware.OpenFPGALoader {
	p := gateware.NewOpenFPGALoader()
	if command := os.Getenv("SOCFORGE_LOADER"); command != "" {
		p.Command = command
	}

	return p
}

func waitForInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}
