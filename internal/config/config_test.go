package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axiomhq/huffman"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "huff.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, huffman.DefaultBufferSize, cfg.Buffer.InputSize)
	require.Equal(t, huffman.DefaultBufferSize, cfg.Buffer.OutputSize)
	require.Equal(t, 3, cfg.Log.Verbosity)
}

func TestLoadFileOverlay(t *testing.T) {
	path := writeConfig(t, `
[buffer]
input = 8192

[log]
verbosity = 4
file = "huff.log"
`)
	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))
	require.Equal(t, 8192, cfg.Buffer.InputSize)
	require.Equal(t, huffman.DefaultBufferSize, cfg.Buffer.OutputSize)
	require.Equal(t, 4, cfg.Log.Verbosity)
	require.Equal(t, "huff.log", cfg.Log.File)
	require.Equal(t, 100, cfg.Log.MaxSize)
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[buffer]
inptu = 8192
`)
	cfg := Default()
	err := LoadFile(path, &cfg)
	require.ErrorContains(t, err, "unknown keys buffer.inptu")
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	require.Error(t, LoadFile(filepath.Join(t.TempDir(), "nope.toml"), &cfg))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Buffer.InputSize = huffman.MinInputSize - 1
	require.ErrorIs(t, cfg.Validate(), huffman.ErrInputBufferTooSmall)

	cfg = Default()
	cfg.Buffer.OutputSize = 1
	require.ErrorIs(t, cfg.Validate(), huffman.ErrOutputBufferTooSmall)

	cfg = Default()
	cfg.Log.Verbosity = 6
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Compress = true
	require.Error(t, cfg.Validate())
}

func TestDumpLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Buffer.OutputSize = 64
	cfg.Log.Verbosity = 5

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	require.Contains(t, buf.String(), "[buffer]")
	require.NotContains(t, buf.String(), "file =")

	loaded := Default()
	require.NoError(t, LoadFile(writeConfig(t, buf.String()), &loaded))
	require.Equal(t, cfg, loaded)
}

func TestCodec(t *testing.T) {
	cfg := Default()
	cfg.Buffer.InputSize = huffman.MinInputSize
	c := cfg.Codec(nil)
	require.Equal(t, huffman.MinInputSize, c.Buffer.InputSize)
	require.Nil(t, c.Logger)
}
