package storage

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressor is the value codec applied by the primary store. The
// fallback and channel stores keep plain text so their files stay
// inspectable by hand.
type Compressor interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// zstdCodec shares one long-lived encoder/decoder pair; EncodeAll and
// DecodeAll are safe for concurrent use on a single instance.
type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstdCompressor builds the codec for day-history payloads. Default
// speed level: the payloads are small JSON documents, ratio matters
// less than not stalling a write-behind.
func NewZstdCompressor() (Compressor, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &zstdCodec{enc: enc, dec: dec}, nil
}

func (c *zstdCodec) Compress(val []byte) ([]byte, error) {
	return c.enc.EncodeAll(val, nil), nil
}

func (c *zstdCodec) Decompress(val []byte) ([]byte, error) {
	return c.dec.DecodeAll(val, nil)
}

func (c *zstdCodec) Close() {
	c.enc.Close()
	c.dec.Close()
}
