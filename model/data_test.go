package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_Marshal(t *testing.T) {
	t.Run("Marshal empty data", func(t *testing.T) {
		d := Data{}

		bytes, err := d.Marshal()

		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), bytes)
	})

	t.Run("Marshal data with simple values", func(t *testing.T) {
		d := Data{
			"classify": "book_flight",
			"count":    42,
			"flag":     true,
		}

		bytes, err := d.Marshal()

		require.NoError(t, err)

		// Unmarshal to verify structure
		var result map[string]any
		err = json.Unmarshal(bytes, &result)
		require.NoError(t, err)
		assert.Equal(t, "book_flight", result["classify"])
		assert.Equal(t, float64(42), result["count"]) // JSON numbers become float64
		assert.Equal(t, true, result["flag"])
	})

	t.Run("Marshal data with nested containers", func(t *testing.T) {
		d := Data{
			"entities": []any{
				map[string]any{"entity": "city", "value": "NYC"},
			},
			"features": map[string]any{"len": 3},
		}

		bytes, err := d.Marshal()

		require.NoError(t, err)
		assert.Contains(t, string(bytes), "entities")
		assert.Contains(t, string(bytes), "features")
	})

	t.Run("Marshal nil data", func(t *testing.T) {
		var d Data = nil

		bytes, err := d.Marshal()

		require.NoError(t, err)
		assert.Equal(t, []byte("null"), bytes)
	})
}

func TestData_Unmarshal(t *testing.T) {
	t.Run("Unmarshal valid JSON bytes", func(t *testing.T) {
		jsonBytes := []byte(`{"classify":"book_flight","count":42}`)
		var d Data

		err := d.Unmarshal(jsonBytes)

		require.NoError(t, err)
		assert.Equal(t, "book_flight", d["classify"])
		assert.Equal(t, float64(42), d["count"])
	})

	t.Run("Unmarshal nil value", func(t *testing.T) {
		var d Data

		err := d.Unmarshal(nil)

		require.NoError(t, err)
		assert.NotNil(t, d)
		assert.Len(t, d, 0)
	})

	t.Run("Unmarshal Data directly", func(t *testing.T) {
		source := Data{"key": "value"}
		var d Data

		err := d.Unmarshal(source)

		require.NoError(t, err)
		assert.Equal(t, "value", d["key"])
	})

	t.Run("Unmarshal invalid JSON", func(t *testing.T) {
		var d Data

		err := d.Unmarshal([]byte(`{invalid json}`))

		require.Error(t, err)
	})

	t.Run("Unmarshal non-byte value", func(t *testing.T) {
		var d Data

		err := d.Unmarshal(42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "type assertion to []byte failed")
	})
}

func TestData_Value(t *testing.T) {
	t.Run("Value produces JSON for the driver", func(t *testing.T) {
		d := Data{"classify": "greet"}

		value, err := d.Value()

		require.NoError(t, err)
		assert.JSONEq(t, `{"classify":"greet"}`, string(value.([]byte)))
	})

	t.Run("Scan round trips through Value", func(t *testing.T) {
		source := Data{"classify": "greet", "entities": []any{}}
		value, err := source.Value()
		require.NoError(t, err)

		var scanned Data
		err = scanned.Scan(value)

		require.NoError(t, err)
		assert.Equal(t, "greet", scanned["classify"])
	})
}

func TestSet(t *testing.T) {
	t.Run("Add and Contains", func(t *testing.T) {
		s := NewSet()

		s.Add("classify")

		assert.True(t, s.Contains("classify"))
		assert.False(t, s.Contains("entities"))
	})

	t.Run("Items are sorted", func(t *testing.T) {
		s := NewSet("b", "c", "a")

		assert.Equal(t, []string{"a", "b", "c"}, s.Items())
	})

	t.Run("JSON round trip", func(t *testing.T) {
		s := NewSet("b", "a")

		bytes, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, string(bytes), "Expected deterministic sorted encoding")

		var decoded Set
		require.NoError(t, json.Unmarshal(bytes, &decoded))
		assert.Equal(t, s, decoded)
	})
}
