package tetraxr

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultPlayspaceName, cfg.Playspace.Name)
	assert.Equal(t, DefaultMainCameraTag, cfg.Camera.Tag)
	assert.Equal(t, DefaultDispatcherName, cfg.Dispatcher.Name)
	assert.Equal(t, "in-out-quad", cfg.Teleport.Easing)
	assert.Equal(t, "console", cfg.Logging.Format)

}

func TestLoadConfigFileAndEnv(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
playspace:
  name: Rig
teleport:
  duration: 250ms
  easing: out-cubic
logging:
  level: debug
  format: json
`), 0o644))

	t.Setenv("TETRAXR__CAMERA__TAG", "HeadCamera")
	t.Setenv("TETRAXR__PLAYSPACE__NAME", "EnvRig")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "EnvRig", cfg.Playspace.Name, "environment variables override the file")
	assert.Equal(t, "HeadCamera", cfg.Camera.Tag)
	assert.Equal(t, 250*time.Millisecond, cfg.Teleport.Duration)
	assert.Equal(t, "out-cubic", cfg.Teleport.Easing)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DefaultDispatcherName, cfg.Dispatcher.Name)

}

func TestLoadConfigRejectsUnsupportedValues(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teleport:\n  easing: bouncy\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrUnsupportedConfig)

	cfg := DefaultConfig()
	cfg.Logging.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrUnsupportedConfig)

	cfg = DefaultConfig()
	cfg.Teleport.Duration = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrUnsupportedConfig)

}

func TestLoadConfigMalformedFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("playspace: [unclosed\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)

}

func TestNewLogger(t *testing.T) {

	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(LoggingConfig{Level: "warn", Format: format})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug is below warn")
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}

	logger, err := NewLogger(LoggingConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), "unknown levels fall back to info")

}
