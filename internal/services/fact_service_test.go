package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactServiceDefaults(t *testing.T) {
	facts, err := NewFactService(DefaultFacts)
	require.NoError(t, err)

	first, err := facts.Fact(0)
	require.NoError(t, err)
	assert.Equal(t, "A vacina contra COVID-19 reduz em 90% o risco de hospitalização", first)

	_, err = facts.Fact(10)
	assert.Error(t, err)
	_, err = facts.Fact(-1)
	assert.Error(t, err)
}

func TestFactServiceValidation(t *testing.T) {
	_, err := NewFactService(DefaultFacts[:9])
	assert.Error(t, err)

	facts := append([]string(nil), DefaultFacts...)
	facts[4] = "  "
	_, err = NewFactService(facts)
	assert.Error(t, err)
}

func TestLoadFacts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.json")
	require.NoError(t, os.WriteFile(path, []byte(`["1","2","3","4","5","6","7","8","9"," ten "]`), 0o600))

	facts, err := LoadFacts(path)
	require.NoError(t, err)
	last, err := facts.Fact(9)
	require.NoError(t, err)
	assert.Equal(t, "ten", last)

	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0o600))
	_, err = LoadFacts(path)
	assert.Error(t, err)

	_, err = LoadFacts(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
