package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValueScanRoundTrip(t *testing.T) {
	m := JSONMap{"totalValue": float64(50000), "currency": "CNY"}

	v, err := m.Value()
	require.NoError(t, err)

	var back JSONMap
	require.NoError(t, back.Scan(v))
	assert.Equal(t, "CNY", back["currency"])

	f, ok := back.Float("totalValue")
	require.True(t, ok)
	assert.Equal(t, 50000.0, f)
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)
}

func TestJSONMapFloat(t *testing.T) {
	m := JSONMap{
		"f64": float64(1.5),
		"int": 7,
		"num": json.Number("42"),
		"str": "not a number",
	}

	f, ok := m.Float("f64")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	f, ok = m.Float("int")
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	f, ok = m.Float("num")
	assert.True(t, ok)
	assert.Equal(t, 42.0, f)

	_, ok = m.Float("str")
	assert.False(t, ok)

	_, ok = m.Float("missing")
	assert.False(t, ok)
}

func TestValidStatus(t *testing.T) {
	for _, s := range KnownStatuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("FROZEN"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("draft"))
}
