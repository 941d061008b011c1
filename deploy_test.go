package notepub

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeployer(t *testing.T) {
	assert.IsType(t, NopDeployer{}, NewDeployer(Config{}, nil))
	assert.IsType(t, NopDeployer{}, NewDeployer(Config{DeployCommand: []string{}}, nil))

	d := NewDeployer(Config{DeployCommand: []string{"true"}, DeployTimeout: time.Minute}, nil)
	require.IsType(t, &CommandDeployer{}, d)
	assert.Equal(t, time.Minute, d.(*CommandDeployer).Timeout)
}

func TestNopDeployer(t *testing.T) {
	assert.NoError(t, NopDeployer{}.Deploy(context.Background(), "/nowhere"))
}

func TestCommandDeployerSuccess(t *testing.T) {
	var buf bytes.Buffer
	d := &CommandDeployer{Command: []string{"echo", "uploading"}, Logger: NewLogger(&buf, "info")}

	require.NoError(t, d.Deploy(context.Background(), "out-dir"))
	assert.Contains(t, buf.String(), "deploy: uploading out-dir")
}

func TestCommandDeployerFailure(t *testing.T) {
	d := &CommandDeployer{Command: []string{"false"}}
	err := d.Deploy(context.Background(), "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false out")
}

func TestCommandDeployerMissingBinary(t *testing.T) {
	d := &CommandDeployer{Command: []string{"notepub-definitely-not-installed"}}
	assert.Error(t, d.Deploy(context.Background(), "out"))
}

func TestCommandDeployerTimeout(t *testing.T) {
	d := &CommandDeployer{Command: []string{"sleep", "5"}, Timeout: 50 * time.Millisecond}
	start := time.Now()
	err := d.Deploy(context.Background(), "1")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}
