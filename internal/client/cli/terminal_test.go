package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/usersadmin/internal/client/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalNotifier(t *testing.T) {
	var out bytes.Buffer
	NewTerminalNotifier(&out, false).Notify("user alice created", controller.SeveritySuccess)
	assert.Equal(t, "[success] user alice created\n", out.String())

	out.Reset()
	NewTerminalNotifier(&out, true).Notify("boom", controller.SeverityError)
	assert.Equal(t, "\x1b[31m[error]\x1b[0m boom\n", out.String())
}

func TestTerminalConfirmer(t *testing.T) {
	var out bytes.Buffer
	c := NewTerminalConfirmer(rdr("y\n"), &out)

	ok, err := c.Confirm(context.Background(), "Delete user #3?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Delete user #3? [y/N] ", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Confirm(ctx, "again?")
	assert.ErrorIs(t, err, context.Canceled)
}
