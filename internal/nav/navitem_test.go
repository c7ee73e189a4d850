package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestItemUnmarshal_PlainPath(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("nav:\n  - index.md\n"), &cfg))
	require.Len(t, cfg.Nav, 1)
	assert.Equal(t, KindPlainPath, cfg.Nav[0].Kind)
	assert.Equal(t, "index.md", cfg.Nav[0].Path)
}

func TestItemUnmarshal_Page(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("nav:\n  - Introduction: intro.md\n"), &cfg))
	require.Len(t, cfg.Nav, 1)
	assert.Equal(t, KindPage, cfg.Nav[0].Kind)
	assert.Equal(t, "Introduction", cfg.Nav[0].Title)
	assert.Equal(t, "intro.md", cfg.Nav[0].Path)
}

func TestItemUnmarshal_Section(t *testing.T) {
	src := `
nav:
  - Reference:
      - intro.md
      - Symbols: symbols/index.md
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	require.Len(t, cfg.Nav, 1)

	section := cfg.Nav[0]
	assert.Equal(t, KindSection, section.Kind)
	assert.Equal(t, "Reference", section.Title)
	require.Len(t, section.Children, 2)
	assert.Equal(t, KindPlainPath, section.Children[0].Kind)
	assert.Equal(t, KindPage, section.Children[1].Kind)
	assert.Equal(t, "symbols/index.md", section.Children[1].Path)
}

func TestItemUnmarshal_MultiKeyMappingFails(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("nav:\n  - A: a.md\n    B: b.md\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single-key mapping")
}

func TestItemUnmarshal_MappingToMappingFails(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("nav:\n  - A:\n      b: c\n"), &cfg)
	require.Error(t, err)
}

func TestIncludeTarget(t *testing.T) {
	cases := []struct {
		in     string
		target string
		ok     bool
	}{
		{"!include ../subsite/mkdocs.yml", "../subsite/mkdocs.yml", true},
		{`!include "../subsite/mkdocs.yml"`, "../subsite/mkdocs.yml", true},
		{"!include '../subsite/mkdocs.yml'", "../subsite/mkdocs.yml", true},
		{"  !include ../x.yml  ", "../x.yml", true},
		{"regular/page.md", "", false},
		{"include ../x.yml", "", false},
	}
	for _, tc := range cases {
		target, ok := IncludeTarget(tc.in)
		assert.Equal(t, tc.ok, ok, "IncludeTarget(%q)", tc.in)
		assert.Equal(t, tc.target, target, "IncludeTarget(%q)", tc.in)
	}
}
