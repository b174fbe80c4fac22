package group

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const sampleGroups = `
[[group]]
key = "fruit"
placeholder = "Pick a fruit"
completion = true

[[group.item]]
title = "Apple"

[[group.item]]
title = "Apricot"
payload = { color = "orange", sku = 42 }

[[group]]
key = "size"
placeholder = "Size"

[[group.item]]
title = "Small"

[[group.item]]
title = "Large"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	groups, err := Parse(sampleGroups)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	fruit := groups[0]
	assert.Equal(t, "fruit", fruit.Key)
	assert.Equal(t, "Pick a fruit", fruit.Placeholder)
	assert.True(t, fruit.Completion)
	assert.Equal(t, []string{"Apple", "Apricot"}, fruit.Titles())
	assert.Nil(t, fruit.Value[0].Payload)
	assert.Equal(t, "orange", fruit.Value[1].Payload["color"])
	assert.EqualValues(t, 42, fruit.Value[1].Payload["sku"])

	size := groups[1]
	assert.False(t, size.Completion, "completion defaults to off")
	assert.Equal(t, []string{"Small", "Large"}, size.Titles())
}

func TestParseInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
		err  error
	}{
		{"missing key", "[[group]]\nplaceholder = \"x\"\n", ErrEmptyKey},
		{"duplicate key", "[[group]]\nkey = \"a\"\n[[group]]\nkey = \"a\"\n", ErrDuplicateKey},
		{"empty title", "[[group]]\nkey = \"a\"\n[[group.item]]\ntitle = \"\"\n", ErrEmptyTitle},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.data)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	_, err := Parse("[[group]\nkey=")
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	groups, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "groups.toml", sampleGroups)

	groups, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Same(t, groups[1], Find(groups, "size"))
	assert.Nil(t, Find(groups, "missing"))

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.toml", "[[group]]\nkey = \"a\"\n[[group]]\nkey = \"a\"\n")
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), bad)
}
