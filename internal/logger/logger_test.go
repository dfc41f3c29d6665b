package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "viewer.txt")
	l := New(path)

	l.Log("panel activated")
	l.Logf("frames=%d", 3)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] panel activated"))
	assert.True(t, strings.HasPrefix(lines[1], "["))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "panel activated\n")
	assert.Contains(t, string(data), "frames=3\n")
}

func TestMemoryOnlyAndCap(t *testing.T) {
	l := New("")
	for i := range maxLines + 10 {
		l.Log(fmt.Sprint(i))
	}
	lines := l.Lines()
	assert.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], fmt.Sprint(maxLines+9)))
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Log("x")
		l.Logf("%d", 1)
	})
	assert.Nil(t, l.Lines())
}
