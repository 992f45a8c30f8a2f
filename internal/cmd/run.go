// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ospect/guestprobe/internal/checks"
	"github.com/ospect/guestprobe/internal/harness"
)

type runOptions struct {
	root *rootOptions

	suites  []string
	qemuBin string
	kernel  FilePath
	initrd  FilePath
	machine string
	cpu     string
	memory  uint64

	timeout          time.Duration
	bootTimeout      time.Duration
	stabilityTimeout time.Duration
	grace            time.Duration
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{root: root}

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Boot the OS image and run check suites against it",
		Long: `Run boots the given OS image in QEMU once per check and watches
the guest's serial console. The image argument may be omitted when a kernel
is given with --kernel.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var image string
			if len(args) > 0 {
				image = args[0]
			}

			return opts.run(cmd, image)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(
		&opts.suites,
		"suite",
		[]string{"basic"},
		"suites to run, '"+checks.All+"' expands to all built-in suites",
	)
	flags.StringVar(&opts.qemuBin, "qemu", "", "QEMU binary to use")
	flags.Var(&opts.kernel, "kernel", "kernel to boot instead of an OS image")
	flags.Var(&opts.initrd, "initrd", "initial ramdisk for direct kernel boot")
	flags.StringVar(&opts.machine, "machine", "", "QEMU machine type to use")
	flags.StringVar(&opts.cpu, "cpu", "", "QEMU CPU type to use")
	flags.Uint64Var(&opts.memory, "memory", 0, "guest memory in MiB")
	flags.DurationVar(
		&opts.timeout,
		"timeout",
		0,
		"default timeout for output pattern waits",
	)
	flags.DurationVar(
		&opts.bootTimeout,
		"boot-timeout",
		0,
		"upper bound for full boot probes",
	)
	flags.DurationVar(
		&opts.stabilityTimeout,
		"stability-timeout",
		0,
		"upper bound for stability probes",
	)
	flags.DurationVar(
		&opts.grace,
		"grace",
		0,
		"grace period between terminate and kill on stop",
	)

	return cmd
}

func (o *runOptions) run(cmd *cobra.Command, image string) error {
	if image == "" && o.kernel == "" {
		return ErrNoBootTarget
	}

	if image != "" {
		err := ValidateFilePath(image)
		if err != nil {
			return fmt.Errorf("os image not found: %s", image)
		}
	}

	err := o.validateFilePaths()
	if err != nil {
		return err
	}

	fileConfig, err := o.root.loadConfig()
	if err != nil {
		return err
	}

	var cfg harness.Config

	if fileConfig != nil {
		fileConfig.apply(&cfg)
	}

	o.apply(&cfg)

	suites, err := o.selectSuites(cmd.Flags().Changed("suite"), fileConfig)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd.OutOrStdout())
	printer.RunHeader(image, string(o.kernel))

	runner := harness.Runner{
		Config:  cfg,
		Image:   image,
		Observe: printer.Result,
	}

	report := runner.Run(cmd.Context(), suites)

	printer.Summary(report)

	if !report.AllPassed() {
		return ErrChecksFailed
	}

	return nil
}

func (o *runOptions) validateFilePaths() error {
	if o.kernel != "" {
		err := ValidateFilePath(string(o.kernel))
		if err != nil {
			return fmt.Errorf("kernel file: %w", err)
		}
	}

	if o.initrd != "" {
		err := ValidateFilePath(string(o.initrd))
		if err != nil {
			return fmt.Errorf("initrd file: %w", err)
		}
	}

	return nil
}

// apply overlays the command line flags onto cfg. Flags win over config
// file settings, which in turn win over built-in defaults.
func (o *runOptions) apply(cfg *harness.Config) {
	if o.qemuBin != "" {
		cfg.Executable = o.qemuBin
	}

	if o.kernel != "" {
		cfg.Kernel = string(o.kernel)
	}

	if o.initrd != "" {
		cfg.Initrd = string(o.initrd)
	}

	if o.machine != "" {
		cfg.Machine = o.machine
	}

	if o.cpu != "" {
		cfg.CPU = o.cpu
	}

	if o.memory > 0 {
		cfg.Memory = o.memory
	}

	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}

	if o.bootTimeout > 0 {
		cfg.BootTimeout = o.bootTimeout
	}

	if o.stabilityTimeout > 0 {
		cfg.StabilityTimeout = o.stabilityTimeout
	}

	if o.grace > 0 {
		cfg.StopGrace = o.grace
	}
}

// selectSuites resolves the suite selection. Config file suites shadow
// built-in suites of the same name. Without an explicit selection, a config
// file that defines suites runs exactly those.
func (o *runOptions) selectSuites(
	explicit bool,
	fileConfig *Config,
) ([]harness.Suite, error) {
	if !explicit && fileConfig != nil && len(fileConfig.Suites) > 0 {
		return fileConfig.Suites, nil
	}

	var suites []harness.Suite

	for _, name := range o.suites {
		if suite, ok := fileConfig.suite(name); ok {
			suites = append(suites, suite)
			continue
		}

		selected, err := checks.ByName(name)
		if err != nil {
			return nil, err
		}

		suites = append(suites, selected...)
	}

	return suites, nil
}
