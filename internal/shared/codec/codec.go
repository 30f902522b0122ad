// Package codec compresses cached values with s2.
package codec

import (
	"errors"
	"fmt"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/klauspost/compress/s2"
)

var ErrCorrupted = errors.New("compressed value is corrupted")

// Compressor turns a value into its stored form and back.
// Values a compressor does not handle pass through unchanged in both directions.
type Compressor interface {
	Compress(value any) (stored any, err error)
	Decompress(stored any) (value any, err error)
}

// Blob is the stored form of a compressed []byte or string value.
type Blob struct {
	Data []byte
	text bool
}

func (b Blob) SizeBytes() int64 { return int64(len(b.Data)) }

type S2 struct {
	encode func(dst, src []byte) []byte
}

func NewS2(cfg *config.CompressionCfg) *S2 {
	c := &S2{encode: s2.Encode}
	switch {
	case !cfg.Enabled():
	case cfg.IsBest:
		c.encode = s2.EncodeBest
	case cfg.IsBetter:
		c.encode = s2.EncodeBetter
	}
	return c
}

func (c *S2) Compress(value any) (any, error) {
	switch v := value.(type) {
	case []byte:
		return Blob{Data: c.encode(nil, v)}, nil
	case string:
		return Blob{Data: c.encode(nil, []byte(v)), text: true}, nil
	}
	return value, nil
}

func (c *S2) Decompress(stored any) (any, error) {
	blob, ok := stored.(Blob)
	if !ok {
		return stored, nil
	}
	data, err := s2.Decode(nil, blob.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if blob.text {
		return string(data), nil
	}
	return data, nil
}
