// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package persist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadHeaderRoundTrip(t *testing.T) {
	words := []uint64{0x1122334455667788, 0, 0xFF, 42}
	h := Header{QBits: 10, RBits: 6, Entries: 3}

	var buf bytes.Buffer
	n, err := WriteHeader(&buf, h, words)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, gotWords, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, version, got.Version)
	assert.Equal(t, uint64(10), got.QBits)
	assert.Equal(t, uint64(6), got.RBits)
	assert.Equal(t, uint64(3), got.Entries)
	assert.Equal(t, words, gotWords)
}

func TestReadHeaderRejectsWrongVersion(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteHeader(&buf, Header{}, nil)
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[0] = 0xFF // corrupt the version's low byte (little-endian)

	_, _, err = ReadHeader(bytes.NewReader(raw))
	assert.Error(t, err)
}
