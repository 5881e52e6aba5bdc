package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/depthraster"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, []int{10, 100, 500, 1000, 10000, 20000}, c.Counts)
	assert.Equal(t, 50, c.MaxDepth)
	assert.Equal(t, ModeBoth, c.Mode)

	bg, err := c.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, depthraster.White, bg)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
width = 320
height = 200
counts = [5, 50]
mode = "parallel"
output = "out.tiff"
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 200, c.Height)
	assert.Equal(t, []int{5, 50}, c.Counts)
	assert.Equal(t, ModeParallel, c.Mode)
	assert.Equal(t, "out.tiff", c.Output)
	// untouched keys keep defaults
	assert.Equal(t, 50, c.MaxDepth)
	assert.Equal(t, 50, c.Opacity)
	require.NoError(t, c.Validate())
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeFile(t, "widht = 10\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, "width = \n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"no counts", func(c *Config) { c.Counts = nil }},
		{"negative count", func(c *Config) { c.Counts = []int{10, -1} }},
		{"bad radius", func(c *Config) { c.MinRadius = 0 }},
		{"zero opacity", func(c *Config) { c.Opacity = 0 }},
		{"opacity too large", func(c *Config) { c.Opacity = 256 }},
		{"negative margin", func(c *Config) { c.Margin = -3 }},
		{"unknown mode", func(c *Config) { c.Mode = "gpu" }},
		{"unknown output format", func(c *Config) { c.Output = "out.gif" }},
		{"bad background", func(c *Config) { c.Background = "#zzz" }},
		{"unknown surface", func(c *Config) { c.Surface = "vulkan" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestValidate_Surface(t *testing.T) {
	c := Default()
	for _, name := range []string{"", "image", "file"} {
		c.Surface = name
		assert.NoError(t, c.Validate(), "surface %q", name)
	}
}

func TestBackgroundColor_Empty(t *testing.T) {
	c := Default()
	c.Background = ""

	bg, err := c.BackgroundColor()
	require.NoError(t, err)
	assert.True(t, bg.IsSentinel())
}

func TestParseCounts(t *testing.T) {
	counts, err := ParseCounts("10, 100,1000")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 100, 1000}, counts)

	_, err = ParseCounts("10,abc")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ParseCounts(" , ")
	assert.ErrorIs(t, err, ErrInvalid)
}
