package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	database := initDB(t)

	err := Init(database.Instance)
	assert.NoError(t, err, "Expected Init to be repeatable")
}

func TestLoadExamplesSql(t *testing.T) {
	database := initDB(t)

	t.Run("Load examples functions with force", func(t *testing.T) {
		err := LoadExamplesSql(database.Instance, true)
		assert.NoError(t, err, "Expected LoadExamplesSql to not return an error")

		exist, err := checkFunctions(database.Instance, ExamplesFunctions)
		require.NoError(t, err)
		assert.True(t, exist, "Expected all examples functions to exist")
	})

	t.Run("Load examples functions without force skips reload", func(t *testing.T) {
		require.NoError(t, LoadExamplesSql(database.Instance, true))

		err := LoadExamplesSql(database.Instance, false)
		assert.NoError(t, err, "Expected LoadExamplesSql without force to not return an error")
	})
}
