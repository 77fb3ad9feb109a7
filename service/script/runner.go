package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/dump"
	"github.com/viant/fairsched/service/kernel"
)

// Runner executes commands against a kernel and writes "<command> -> <code>"
// for each of them.
type Runner struct {
	kernel *kernel.Service
	writer io.Writer
	diff   bool
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(r *Runner)

// WithDiff writes a unified diff of the process listing after every mutating command.
func WithDiff(diff bool) RunnerOption {
	return func(r *Runner) {
		r.diff = diff
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner writing to writer.
func NewRunner(aKernel *kernel.Service, writer io.Writer, options ...RunnerOption) *Runner {
	ret := &Runner{kernel: aKernel, writer: writer}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ret
}

// Run executes commands in order. It stops on ctx cancellation or a write error.
func (r *Runner) Run(ctx context.Context, commands []*Command) error {
	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		var before []string
		if r.diff && command.Mutating() {
			before = r.kernel.Dump(ctx)
		}
		code, err := r.Execute(ctx, command)
		if err != nil {
			r.logger.Debug("command failed", "line", command.Line, "command", command.String(), "code", code, "error", err)
		}
		if command.Name == NameDump {
			if err := r.writeLines(r.kernel.Dump(ctx)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(r.writer, "%v -> %d\n", command, code); err != nil {
			return err
		}
		if !r.diff || !command.Mutating() {
			continue
		}
		patch, err := dump.Diff(before, r.kernel.Dump(ctx), 0)
		if err != nil {
			return err
		}
		if patch != "" {
			if _, err := io.WriteString(r.writer, patch); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute runs one command and returns its console code: the resulting pid,
// count or weight on success and a negative sentinel on failure.
func (r *Runner) Execute(ctx context.Context, command *Command) (int, error) {
	k := r.kernel
	switch command.Name {
	case NameInit:
		pid, err := k.Init(ctx)
		if err != nil {
			return -1, err
		}
		return pid, nil
	case NameFork:
		pid, err := k.Fork(ctx, command.Args[0])
		if err != nil {
			return kernel.Code(kernel.OpFork, err), err
		}
		return pid, nil
	case NameExit:
		err := k.Exit(ctx, command.Args[0])
		return kernel.Code(kernel.OpExit, err), err
	case NameWait:
		pid, err := k.Wait(ctx, command.Args[0])
		if err != nil {
			return kernel.Code(kernel.OpWait, err), err
		}
		return pid, nil
	case NameSleep:
		pid, err := k.Sleep(ctx, command.Args[0], command.Args[1])
		if err != nil {
			return kernel.Code(kernel.OpSleep, err), err
		}
		return pid, nil
	case NameWakeup:
		return k.Wake(ctx, command.Args[0]), nil
	case NameKill:
		err := k.Kill(ctx, command.Args[0])
		return kernel.Code(kernel.OpKill, err), err
	case NameNice:
		err := k.SetNice(ctx, command.Args[0], command.Args[1])
		return kernel.Code(kernel.OpNice, err), err
	case NameSchedule:
		decision, err := k.Schedule(ctx)
		if err != nil {
			return -1, err
		}
		if decision.Idle && decision.Process.State != proc.StateRunning {
			return 0, nil
		}
		return decision.Process.PID, nil
	case NameTimeslice:
		return k.Recompute(ctx), nil
	case NameDump:
		return 0, nil
	}
	return -1, fmt.Errorf("%w: %v", ErrUnknownCommand, command.Name)
}

func (r *Runner) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}
	}
	return nil
}
