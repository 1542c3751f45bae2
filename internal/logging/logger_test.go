package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace":   TRACE,
		"DEBUG":   DEBUG,
		"":        INFO,
		" info ":  INFO,
		"warning": WARN,
		"Error":   ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, "уровень %q", in)
		assert.Equal(t, want, got, "уровень %q", in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err, "Неизвестный уровень должен давать ошибку")
}

func TestLogger_FileLevels(t *testing.T) {
	dir := t.TempDir()
	Configure(Options{Dir: dir, ConsoleLevel: ERROR, FileLevel: DEBUG})
	defer Configure(Options{ConsoleLevel: INFO, FileLevel: DEBUG})

	l, err := NewLogger("test")
	require.NoError(t, err)

	assert.False(t, l.Enabled(TRACE), "TRACE ниже обоих порогов")
	assert.True(t, l.Enabled(DEBUG), "DEBUG пишется в файл")

	l.Trace("скрытое сообщение")
	l.Debug("чанк %d выделен", 42)
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1, "Должен быть создан один файл логов")

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [test] чанк 42 выделен")
	assert.NotContains(t, string(data), "скрытое сообщение")
}

func TestLoggerManager_Components(t *testing.T) {
	lm := &LoggerManager{loggers: make(map[string]*Logger)}

	a, err := lm.GetLogger("world")
	require.NoError(t, err)
	b, err := lm.GetLogger("world")
	require.NoError(t, err)
	assert.Same(t, a, b, "Повторный запрос должен вернуть тот же логгер")

	_, err = lm.GetLogger("mesh")
	require.NoError(t, err)
	assert.Equal(t, []string{"mesh", "world"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("world", TRACE, TRACE))
	assert.True(t, a.Enabled(TRACE))
	assert.Error(t, lm.SetLogLevel("missing", INFO, INFO))

	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}
