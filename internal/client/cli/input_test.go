package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, tty bool, read func(int) ([]byte, error)) {
	t.Helper()
	oldRead, oldTTY, oldFd := readPassword, isTerminal, stdinFd
	t.Cleanup(func() { readPassword, isTerminal, stdinFd = oldRead, oldTTY, oldFd })
	isTerminal = func(int) bool { return tty }
	stdinFd = func() int { return 0 }
	if read != nil {
		readPassword = read
	}
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("s3cret"), nil })

	var out bytes.Buffer
	pw, err := GetPassword(rdr(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return nil, errors.New("boom") })

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), "Password", &out)
	require.Error(t, err)
}

func TestGetPassword_Piped(t *testing.T) {
	stubTerminal(t, false, func(int) ([]byte, error) {
		t.Fatal("terminal read on piped input")
		return nil, nil
	})

	var out bytes.Buffer
	r := rdr(" keeps spaces \nnext")
	pw, err := GetPassword(r, "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, " keeps spaces ", string(pw))

	pw, err = GetPassword(r, "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "next", string(pw))
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"sure\n": false,
	} {
		var out bytes.Buffer
		got, err := Confirm(rdr(in), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
		assert.Equal(t, "Delete? [y/N] ", out.String())
	}

	_, err := Confirm(rdr(""), "Delete?", &bytes.Buffer{})
	require.Error(t, err)
}

func TestSecretInput_SameBytesMaskedOrVisible(t *testing.T) {
	stubTerminal(t, false, nil)

	masked, err := GetPassword(rdr("pass \r\n"), "Password", &bytes.Buffer{})
	require.NoError(t, err)
	visible, err := GetVisibleSecret(rdr("pass \r\n"), "Password", &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "pass ", string(masked))
	assert.Equal(t, string(masked), visible)
}

func TestGetPassword_TerminalConsumesTypeAheadFirst(t *testing.T) {
	calls := 0
	stubTerminal(t, true, func(int) ([]byte, error) {
		calls++
		return []byte("from-tty"), nil
	})

	r := rdr("alice\ntyped-ahead\n")
	name, err := readLine(r)
	require.NoError(t, err)
	require.Equal(t, "alice", name)

	pw, err := GetPassword(r, "Password", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "typed-ahead", string(pw))
	assert.Zero(t, calls)

	pw, err = GetPassword(r, "Password", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-tty", string(pw))
	assert.Equal(t, 1, calls)
}
