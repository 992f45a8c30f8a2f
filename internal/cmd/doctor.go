// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ospect/guestprobe/internal/initrd"
	"github.com/ospect/guestprobe/internal/qemu"
)

type doctorOptions struct {
	root *rootOptions

	qemuBin string
	kernel  FilePath
	initrd  FilePath
}

func newDoctorCommand(root *rootOptions) *cobra.Command {
	opts := &doctorOptions{root: root}

	cmd := &cobra.Command{
		Use:   "doctor [image]",
		Short: "Check that the host can boot and probe a guest",
		Long: `Doctor checks the host environment before a run: the QEMU
binary must be resolvable and answer a version probe, the OS image must be
a non-empty regular file, and a given initrd must be a readable cpio
archive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var image string
			if len(args) > 0 {
				image = args[0]
			}

			return opts.run(cmd, image)
		},
	}

	cmd.Flags().StringVar(&opts.qemuBin, "qemu", "", "QEMU binary to use")
	cmd.Flags().Var(&opts.kernel, "kernel", "kernel to check")
	cmd.Flags().Var(&opts.initrd, "initrd", "initial ramdisk to inspect")

	return cmd
}

func (o *doctorOptions) run(cmd *cobra.Command, image string) error {
	report := newDoctorReport(cmd.OutOrStdout())

	var fileConfig *Config

	if o.root.config != "" {
		var err error

		fileConfig, err = LoadConfig(string(o.root.config))
		report.check("config", string(o.root.config), err)
	}

	executable := o.qemuBin
	if executable == "" && fileConfig != nil {
		executable = fileConfig.Executable
	}

	if executable == "" {
		executable = qemu.DefaultExecutable()
	}

	path, err := exec.LookPath(executable)
	report.check("qemu executable", path, err)

	if err == nil {
		version, err := qemu.Version(cmd.Context(), executable)
		report.check("qemu version", version, err)
	}

	if image != "" {
		report.check("os image", imageDetail(image), checkImage(image))
	}

	if o.kernel != "" {
		report.check("kernel", string(o.kernel),
			ValidateFilePath(string(o.kernel)))
	}

	if o.initrd != "" {
		o.checkInitrd(report)
	}

	if report.failed {
		return ErrPreflightFailed
	}

	return nil
}

func (o *doctorOptions) checkInitrd(report *doctorReport) {
	info, err := initrd.Inspect(string(o.initrd))
	if err != nil {
		report.check("initrd", string(o.initrd), err)
		return
	}

	detail := fmt.Sprintf("%s (%d files, %d dirs, %d bytes)",
		o.initrd, info.Files, info.Dirs, info.Size)
	report.check("initrd", detail, nil)

	if !info.HasInit {
		report.warn("initrd", "no init entry in archive")
	}
}

func checkImage(path string) error {
	err := ValidateFilePath(path)
	if err != nil {
		return err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if stat.Size() == 0 {
		return fmt.Errorf("%w: empty file", ErrNotRegularFile)
	}

	return nil
}

func imageDetail(path string) string {
	stat, err := os.Stat(path)
	if err != nil {
		return path
	}

	return fmt.Sprintf("%s (%d bytes)", path, stat.Size())
}

// doctorReport prints one line per preflight check and remembers whether
// any of them failed.
type doctorReport struct {
	out    io.Writer
	ok     *color.Color
	bad    *color.Color
	notice *color.Color
	failed bool
}

func newDoctorReport(out io.Writer) *doctorReport {
	return &doctorReport{
		out:    out,
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		notice: color.New(color.FgYellow),
	}
}

func (r *doctorReport) check(what, detail string, err error) {
	if err != nil {
		r.failed = true

		r.bad.Fprint(r.out, "fail  ")
		fmt.Fprintf(r.out, "%s: %v\n", what, err)

		return
	}

	r.ok.Fprint(r.out, "ok    ")
	fmt.Fprintf(r.out, "%s: %s\n", what, detail)
}

func (r *doctorReport) warn(what, detail string) {
	r.notice.Fprint(r.out, "warn  ")
	fmt.Fprintf(r.out, "%s: %s\n", what, detail)
}
