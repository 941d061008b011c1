package notepub

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// Deployer pushes a built output directory somewhere.
type Deployer interface {
	Deploy(ctx context.Context, dir string) error
}

// NopDeployer does nothing.
type NopDeployer struct{}

func (NopDeployer) Deploy(context.Context, string) error { return nil }

// CommandDeployer runs an external command with the output directory as its
// final argument, blocking until it exits. Its output is forwarded to Logger
// line by line.
type CommandDeployer struct {
	Command []string
	Timeout time.Duration // zero means no limit
	Logger  *log.Logger
}

// NewDeployer returns a CommandDeployer for cfg, or a NopDeployer when no
// deploy command is configured.
func NewDeployer(cfg Config, logger *log.Logger) Deployer {
	if len(cfg.DeployCommand) == 0 {
		return NopDeployer{}
	}
	return &CommandDeployer{Command: cfg.DeployCommand, Timeout: cfg.DeployTimeout, Logger: logger}
}

func (d *CommandDeployer) Deploy(ctx context.Context, dir string) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	args := append(append([]string(nil), d.Command[1:]...), dir)
	cmd := exec.CommandContext(ctx, d.Command[0], args...)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(pr)
		for sc.Scan() {
			if d.Logger != nil {
				d.Logger.Infof("deploy: %s", sc.Text())
			}
		}
		// Drain so the command never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, pr)
	}()

	err := cmd.Run()
	pw.Close()
	wg.Wait()
	if err != nil {
		return fmt.Errorf("deploy %q: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}
