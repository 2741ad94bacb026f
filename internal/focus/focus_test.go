package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChords(t *testing.T) {
	assert.Equal(t, chord{key: "v", mods: []string{"cmd"}}, pasteChord("darwin"))
	assert.Equal(t, chord{key: "v", mods: []string{"ctrl"}}, pasteChord("linux"))
	assert.Equal(t, chord{key: "v", mods: []string{"ctrl"}}, pasteChord("windows"))

	assert.Equal(t, chord{key: "tab", mods: []string{"cmd"}}, switchChord("darwin"))
	assert.Equal(t, chord{key: "tab", mods: []string{"alt"}}, switchChord("windows"))
}

func TestCheckDisplay(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	assert.NoError(t, checkDisplay("windows", env(nil)))
	assert.NoError(t, checkDisplay("darwin", env(nil)))
	assert.NoError(t, checkDisplay("linux", env(map[string]string{"DISPLAY": ":0"})))
	assert.ErrorIs(t, checkDisplay("linux", env(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})), ErrUnsupported)
}

func TestHandleValid(t *testing.T) {
	assert.False(t, Handle(0).Valid())
	assert.False(t, Handle(-1).Valid())
	assert.True(t, Handle(4242).Valid())
}
