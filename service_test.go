package fairsched

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/script"
)

func TestService_New(t *testing.T) {
	ctx := context.Background()
	config := DefaultConfig()
	config.Table.Capacity = 3
	config.Lock.Kind = "mutex"

	srv, err := New(
		WithConfig(config),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithContextInitializer(func(c *proc.Context) { c.PC = "entry" }),
	)
	assert.Nil(t, err)
	k := srv.Kernel()
	assert.Equal(t, 3, k.Capacity())

	_, err = k.Init(ctx)
	assert.Nil(t, err)
	pid, err := k.Fork(ctx, 1)
	assert.Nil(t, err)
	child, err := k.Lookup(ctx, pid)
	assert.Nil(t, err)
	assert.Equal(t, "entry", child.Context.PC)

	e, err := srv.Events().Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, pid, e.PID)
	assert.Equal(t, k.BootID(), e.BootID)
}

func TestService_New_Invalid(t *testing.T) {
	config := DefaultConfig()
	config.Lock.Kind = "spin"
	_, err := New(WithConfig(config))
	assert.NotNil(t, err)
}

func TestService_Runner(t *testing.T) {
	ctx := context.Background()
	srv, err := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.Nil(t, err)
	commands, err := script.Parse("init\nfork 1\nkill 2\nexit 2\nwait 1\n")
	assert.Nil(t, err)
	buffer := &bytes.Buffer{}
	assert.Nil(t, srv.Runner(buffer).Run(ctx, commands))
	assert.Equal(t, "init -> 1\nfork 1 -> 2\nkill 2 -> 0\nexit 2 -> 0\nwait 1 -> 2\n", buffer.String())

	counters := srv.Kernel().Stats()
	assert.Equal(t, 1, counters.Forks)
	assert.Equal(t, 1, counters.Reaps)
}

func TestNewLogger(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger, err := NewLogger(buffer, LogConfig{Level: "warn", Format: "json"})
	assert.Nil(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "pid", 1)
	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), `"msg":"shown"`)

	_, err = NewLogger(buffer, LogConfig{Level: "loud"})
	assert.NotNil(t, err)
}
