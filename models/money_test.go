package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyRendersFixedScale(t *testing.T) {
	out, err := json.Marshal(struct {
		Cost *Money `json:"cost"`
		None *Money `json:"none"`
	}{Cost: ptr(MustMoney("1500"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cost":"1500.00","none":null}`, string(out))

	v, err := MustMoney("12.5").Value()
	require.NoError(t, err)
	assert.Equal(t, "12.50", v)
}

func TestMoneyScan(t *testing.T) {
	for _, src := range []any{int64(1500), 1500.0, "1500.00", []byte("1500")} {
		var m Money
		require.NoError(t, m.Scan(src))
		assert.Equal(t, "1500.00", m.String())
	}

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"99.9"`), &m))
	assert.Equal(t, "99.90", m.String())
}

func ptr[T any](v T) *T { return &v }
