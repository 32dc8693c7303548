package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDecodeLinesSkipsMalformedRecords(t *testing.T) {
	payload := []byte(`[
		{"product_id":"p1","name":"Wallet","price":"499","quantity":2},
		{"product_id":"","name":"orphan","price":"1","quantity":1},
		{"product_id":"p2","name":"Mug","price":"249","quantity":0},
		{"product_id":"p3","name":"Notebook","price":"129","quantity":1}
	]`)

	lines, err := decodeLines(payload)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "p1", lines[0].Product.ID)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, "p3", lines[1].Product.ID)
}

func TestDecodeLinesMergesDuplicateIDs(t *testing.T) {
	payload := []byte(`[
		{"product_id":"p1","name":"Wallet","price":"499","quantity":1},
		{"product_id":"p1","name":"Wallet","price":"499","quantity":2}
	]`)

	lines, err := decodeLines(payload)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].Quantity)
}

func TestDecodeLinesRejectsGarbage(t *testing.T) {
	_, err := decodeLines([]byte(`{"not":"an array"}`))
	require.Error(t, err)
}

func TestEncodeDecodePreservesOrderAndPrices(t *testing.T) {
	in := []Line{
		{Product: product("p2", 600), Quantity: 1},
		{Product: product("p1", 499), Quantity: 3},
	}

	payload, err := encodeLines(in)
	require.NoError(t, err)

	out, err := decodeLines(payload)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "p2", out[0].Product.ID)
	require.Equal(t, "p1", out[1].Product.ID)
	require.True(t, out[1].Product.Price.Equal(decimal.NewFromInt(499)))
	require.Equal(t, 3, out[1].Quantity)
}
