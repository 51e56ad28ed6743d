package utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashReader(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 10000)
	hr := NewHashReader(bytes.NewReader(data))
	out, err := io.ReadAll(hr)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, int64(len(data)), hr.Size())

	h := xxhash.New()
	_, _ = h.Write(data)
	want := h.Sum(nil)
	got := hr.Sum()
	assert.Equal(t, 16, len(got))
	assert.Equal(t, want, mustDecodeHex(t, got))
}
