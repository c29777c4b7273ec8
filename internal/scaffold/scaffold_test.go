package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("my-dungeon_1"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("../escape"))
	assert.Error(t, ValidateName("has spaces"))
	assert.Error(t, ValidateName("/abs/path"))
}

func TestWriteProject_GeneratesSourceAndReadme(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	a := &Answers{
		ProjectName:    "crypt",
		WorldWidth:     12,
		WorldHeight:    8,
		UserName:       "adventurer",
		StartingHP:     100,
		IncludeNPC:     true,
		IncludeMonster: true,
	}

	sourcePath, err := WriteProject(a)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".", "crypt", "game.dungeon"), sourcePath)

	data, err := os.ReadFile(sourcePath)
	require.NoError(t, err)
	src := string(data)
	assert.Contains(t, src, "12 x 8 grid")
	assert.Contains(t, src, `unique_name="adventurer"`)
	assert.Contains(t, src, "monsters:")
	assert.Contains(t, src, "NPC:")

	_, err = os.Stat(filepath.Join("crypt", "README.md"))
	assert.NoError(t, err)
}

func TestWriteProject_RefusesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.Mkdir("taken", 0o755))

	_, err = WriteProject(&Answers{ProjectName: "taken"})
	assert.Error(t, err)
}
