// 2026 Craig Tomkow

package exec

import (
	"context"
	"github.com/pkg/errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrEmptyCommand  = errors.New("empty command")
	ErrEmptyPipeline = errors.New("empty pipeline")
)

// Stage is a single command of a pipeline, as an argument vector
type Stage struct {
	Name string
	Args []string
}

// Pipeline connects the stdout of each stage to the stdin of the next
type Pipeline struct {
	Stages []Stage

	// if set, the last stage writes here instead of the terminal
	Output string
}

func NewStage(name string, args ...string) Stage {
	return Stage{Name: name, Args: args}
}

// Pipe returns a pipeline of the given stages
func Pipe(stages ...Stage) Pipeline {
	return Pipeline{Stages: stages}
}

// To redirects the pipeline's final output into filename
func (p Pipeline) To(filename string) Pipeline {
	p.Output = filename
	return p
}

// Names returns the command name of every stage, in order
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p.Stages))
	for _, stage := range p.Stages {
		names = append(names, stage.Name)
	}
	return names
}

// shell-like rendering, for logs only
func (p Pipeline) String() string {
	parts := make([]string, 0, len(p.Stages))
	for _, stage := range p.Stages {
		parts = append(parts, strings.Join(append([]string{stage.Name}, stage.Args...), " "))
	}
	out := strings.Join(parts, " | ")
	if p.Output != "" {
		out += " > " + p.Output
	}
	return out
}

// Run starts every stage, wires the pipes between them and waits for all of them.
// Like a shell with pipefail, the error of the last failing stage is returned: when a
// consumer fails, the producers feeding it die of a broken pipe and would hide the cause.
func (p Pipeline) Run(ctx context.Context, stdout io.Writer, stderr io.Writer) error {
	if len(p.Stages) == 0 {
		return ErrEmptyPipeline
	}

	if p.Output != "" {
		fd, err := os.Create(p.Output)
		if err != nil {
			return err
		}
		defer fd.Close()
		stdout = fd
	}

	cmds := make([]*exec.Cmd, len(p.Stages))
	for i, stage := range p.Stages {
		cmds[i] = exec.CommandContext(ctx, stage.Name, stage.Args...)
		cmds[i].Stderr = stderr
	}
	cmds[0].Stdin = os.Stdin
	cmds[len(cmds)-1].Stdout = stdout

	// parent copies of the pipe ends, closed once every child holds its own
	var ends []*os.File
	closeEnds := func() {
		for _, f := range ends {
			_ = f.Close()
		}
		ends = nil
	}
	defer closeEnds()

	for i := 0; i < len(cmds)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			return err
		}
		ends = append(ends, r, w)
		cmds[i].Stdout = w
		cmds[i+1].Stdin = r
	}

	started := 0
	var startErr error
	for _, cmd := range cmds {
		if startErr = cmd.Start(); startErr != nil {
			break
		}
		started++
	}
	closeEnds()

	var lastErr error
	for i := 0; i < started; i++ {
		if err := cmds[i].Wait(); err != nil {
			lastErr = errors.Wrap(err, p.Stages[i].Name)
		}
	}

	// stages after a failed start never ran, so it is the last failure
	if startErr != nil {
		return errors.Wrap(startErr, p.Stages[started].Name)
	}

	return lastErr
}
