// 2026 Craig Tomkow

package exec

import (
	"bytes"
	"context"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Exec runs local commands. Output is either captured or streamed to the terminal, never both.
type Exec struct {

	// unprivileged user commands are run as when invoked through sudo. empty means run directly
	User string

	// terminal streams used by Passthru
	Stdout io.Writer
	Stderr io.Writer
}

// instantiate a new exec handler. The invoking user is taken from SUDO_USER
func NewExec() *Exec {
	return &Exec{
		User:   os.Getenv("SUDO_USER"),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// run a command and return its stdout
func (ex *Exec) LocalCmd(ctx context.Context, command ...string) (string, error) {
	if len(command) == 0 {
		return "", ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return out.String(), errors.Wrap(err, command[0])
		}
		return out.String(), errors.Wrapf(err, "%s: %s", command[0], msg)
	}

	return out.String(), nil
}

// run a command as the invoking, unprivileged user and return its stdout
func (ex *Exec) RunAsUser(ctx context.Context, command ...string) (string, error) {
	return ex.LocalCmd(ctx, ex.asUser(command)...)
}

// run the pipeline with the final output streamed live to the terminal (or to the pipeline's output file)
func (ex *Exec) Passthru(ctx context.Context, p Pipeline) error {
	glog.V(1).Info("running: " + p.String())

	return p.Run(ctx, ex.Stdout, ex.Stderr)
}

func (ex *Exec) asUser(command []string) []string {
	if ex.User == "" || ex.User == "root" {
		return command
	}
	return append([]string{"sudo", "-u", ex.User}, command...)
}
