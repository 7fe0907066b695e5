package character_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

func TestLoadFromBytes(t *testing.T) {
	chars, err := character.LoadFromBytes([]byte(`
characters:
  - name: " Ada "
    category: player
    age: 34
    attributes:
      strength: 2
      will_power: 4
    status:
      life: 26
      max_load: 90
    skills:
      - name: Guns
        level: 3
    traits:
      - name: Cowardly
        cost: -2
  - name: Shambler
    category: ZOMBIE
`))
	require.NoError(t, err)
	require.Len(t, chars, 2)

	ada := chars[0]
	assert.Equal(t, "Ada", ada.Name)
	assert.Equal(t, character.CategoryPlayer, ada.Category)
	require.NotNil(t, ada.Age)
	assert.Equal(t, 34, *ada.Age)
	assert.Equal(t, 4, ada.Attributes.WillPower)
	assert.Equal(t, 26, ada.Life())
	assert.Equal(t, 90, ada.Status.MaxLoad)
	assert.Len(t, ada.Drawbacks(), 1)

	assert.Equal(t, 0, chars[1].Life())
}

func TestLoadFromBytesRejectsInvalid(t *testing.T) {
	_, err := character.LoadFromBytes([]byte("characters:\n  - name: Rex\n    category: dragon\n"))
	assert.ErrorIs(t, err, character.ErrInvalidCategory)

	_, err = character.LoadFromBytes([]byte("characters:\n  - name: ' '\n    category: NPC\n"))
	assert.ErrorIs(t, err, character.ErrNameRequired)

	_, err = character.LoadFromBytes([]byte("characters: [\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("characters:\n  - name: Bo\n    category: ally\n"), 0644))

	chars, err := character.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, character.CategoryAlly, chars[0].Category)

	_, err = character.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
