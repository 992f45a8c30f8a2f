// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ospect/guestprobe/internal/console"
	"github.com/ospect/guestprobe/internal/qemu"
)

// Controller owns a single guest process. It is scoped to one boot: once
// the guest has been started and stopped, a new Controller is needed for
// the next boot.
//
// All methods are safe for concurrent use.
type Controller struct {
	cfg   Config
	image string

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	pipes   []io.Closer
	queue   *console.Queue
	exited  chan struct{}
	exitErr error
}

// New creates a Controller that boots the guest from image. If
// [Config.Kernel] is set, the guest boots from the kernel instead and
// image may be empty. Unset config fields are filled with defaults.
func New(cfg Config, image string) *Controller {
	cfg.AddDefaults()

	return &Controller{
		cfg:   cfg,
		image: image,
	}
}

// Config returns the controller's effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Start boots the guest. Additional raw QEMU flags can be passed in
// extraFlags. They are applied after [Config.BaseFlags] and must not
// collide with the arguments the controller sets itself.
//
// The guest is terminated when ctx is cancelled, with the same grace
// period [Controller.Stop] uses.
func (c *Controller) Start(ctx context.Context, extraFlags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return ErrAlreadyStarted
	}

	flags := append(slices.Clone(c.cfg.BaseFlags), extraFlags...)

	extra, err := qemu.ParseArgs(flags)
	if err != nil {
		return err
	}

	spec := c.commandSpec(extra)

	args, err := spec.Build()
	if err != nil {
		return err
	}

	if err := c.checkEnvironment(spec); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, spec.Executable, args...)
	cmd.Cancel = func() error {
		return terminate(cmd.Process)
	}
	cmd.WaitDelay = c.cfg.StopGrace

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", spec.Executable, err)
	}

	c.cmd = cmd
	c.stdin = stdin
	c.pipes = []io.Closer{stdout, stderr}
	c.queue = console.NewQueue(c.cfg.QueueCapacity, c.cfg.TailSize)
	c.exited = make(chan struct{})

	slog.Debug("guest started",
		slog.Int("pid", cmd.Process.Pid),
		slog.String("image", c.image),
	)

	go c.supervise(stdout, stderr)

	return nil
}

// commandSpec assembles the QEMU invocation for this boot.
func (c *Controller) commandSpec(extra []qemu.Argument) qemu.CommandSpec {
	spec := qemu.CommandSpec{
		Executable:      c.cfg.Executable,
		Image:           c.image,
		Kernel:          c.cfg.Kernel,
		Initrd:          c.cfg.Initrd,
		Machine:         c.cfg.Machine,
		CPU:             c.cfg.CPU,
		Memory:          c.cfg.Memory,
		DebugCategories: c.cfg.DebugCategories,
		DebugLogPath:    c.cfg.DebugLogPath,
		TraceEvents:     c.cfg.TraceEvents,
		ExtraArgs:       extra,
	}
	spec.AddDefaults()

	return spec
}

// checkEnvironment verifies the emulator and the boot image exist before
// the guest is started, so a broken environment fails with a clear error
// instead of an obscure exec failure.
func (c *Controller) checkEnvironment(spec qemu.CommandSpec) error {
	if _, err := exec.LookPath(spec.Executable); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, spec.Executable)
	}

	if spec.Image != "" {
		info, err := os.Stat(spec.Image)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrImageNotFound, spec.Image)
		}
	}

	return nil
}

// supervise drains both output streams and reaps the guest process.
// Reading must be complete before the process is waited for, since wait
// closes the pipes.
func (c *Controller) supervise(stdout, stderr io.Reader) {
	readers := errgroup.Group{}

	readers.Go(func() error {
		return console.Drain(stdout, console.Stdout, c.queue)
	})
	readers.Go(func() error {
		return console.Drain(stderr, console.Stderr, c.queue)
	})

	if err := readers.Wait(); err != nil && !errors.Is(err, fs.ErrClosed) {
		slog.Warn("console reader failed", slog.Any("error", err))
	}

	err := c.cmd.Wait()

	c.mu.Lock()
	c.exitErr = err
	c.mu.Unlock()

	c.queue.Close()
	close(c.exited)

	slog.Debug("guest exited", slog.Any("error", err))
}

// Running reports whether the guest has been started and has not exited
// yet.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running()
}

// running reports the guest state. Callers must hold c.mu.
func (c *Controller) running() bool {
	if c.cmd == nil {
		return false
	}

	select {
	case <-c.exited:
		return false
	default:
		return true
	}
}

// Send writes text followed by a newline to the guest's stdin. The write
// happens outside the controller lock, so a guest that does not read its
// input cannot wedge the other controller operations.
func (c *Controller) Send(text string) error {
	c.mu.Lock()
	running := c.running()
	stdin := c.stdin
	c.mu.Unlock()

	if !running {
		return ErrNotRunning
	}

	if _, err := io.WriteString(stdin, text+"\n"); err != nil {
		return fmt.Errorf("send input: %w", err)
	}

	return nil
}

// Tail returns up to n of the most recent output lines, oldest first. A
// non-positive n returns the whole remembered tail.
func (c *Controller) Tail(n int) []console.Line {
	c.mu.Lock()
	queue := c.queue
	c.mu.Unlock()

	if queue == nil {
		return nil
	}

	return queue.Tail(n)
}

// Stop shuts the guest down. It asks for termination first and kills the
// process if it has not exited after [Config.StopGrace]. If the readers
// still do not finish within another grace period, the output pipes are
// closed to force them, so Stop returns within a bounded time even when
// the guest leaked its pipes to another process. Stop is idempotent and
// safe to call on a controller that was never started.
func (c *Controller) Stop() error {
	c.mu.Lock()
	cmd := c.cmd
	exited := c.exited
	grace := c.cfg.StopGrace
	c.mu.Unlock()

	if cmd == nil {
		return nil
	}

	select {
	case <-exited:
		return nil
	default:
	}

	slog.Debug("stopping guest", slog.Int("pid", cmd.Process.Pid))

	err := terminate(cmd.Process)
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Warn("terminate failed", slog.Any("error", err))
	}

	if awaitExit(exited, grace) {
		return nil
	}

	slog.Debug("killing guest", slog.Int("pid", cmd.Process.Pid))

	err = cmd.Process.Kill()
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill guest: %w", err)
	}

	if awaitExit(exited, grace) {
		return nil
	}

	// The guest is dead but the readers are still blocked, so it must
	// have leaked its output pipes to another process. Close our read
	// ends to finish the readers, which bounds the join below.
	c.closePipes()

	<-exited

	return nil
}

// awaitExit waits up to grace for the exited latch.
func awaitExit(exited chan struct{}, grace time.Duration) bool {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-exited:
		return true
	case <-timer.C:
		return false
	}
}

// closePipes closes the parent-side read ends of the guest's output
// pipes, unblocking both readers.
func (c *Controller) closePipes() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pipe := range c.pipes {
		if err := pipe.Close(); err != nil && !errors.Is(err, fs.ErrClosed) {
			slog.Warn("closing pipe failed", slog.Any("error", err))
		}
	}
}

// exitReason describes why the guest is gone, including its exit status
// if it was not clean.
func (c *Controller) exitReason() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exitErr != nil {
		return fmt.Errorf("%w: %v", ErrGuestExited, c.exitErr)
	}

	return ErrGuestExited
}
