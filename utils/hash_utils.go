package utils

import (
	"encoding/hex"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
)

// HashReader computes the xxhash of everything read through it.
type HashReader struct {
	r io.Reader
	h hash.Hash64
	n int64
}

func NewHashReader(r io.Reader) *HashReader {
	return &HashReader{r: r, h: xxhash.New()}
}

func (h *HashReader) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	if n > 0 {
		_, _ = h.h.Write(p[:n])
		h.n += int64(n)
	}
	return n, err
}

func (h *HashReader) Size() int64 {
	return h.n
}

func (h *HashReader) Sum() string {
	return hex.EncodeToString(h.h.Sum(nil))
}
