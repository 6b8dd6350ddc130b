// Package snapshot serializes the live elements of a fixed-capacity vector
// to a compact, checksummed binary frame and restores them. Element encoding
// is supplied by the caller; the frame adds framing, optional compression,
// and an xxhash64 integrity check.
//
// Frame layout:
//
//	magic   uint32 (big endian)
//	version uint8
//	codec   uint8
//	count   uvarint  (element count)
//	plen    uvarint  (compressed payload length)
//	payload plen bytes: compressed sequence of (uvarint length, bytes)
//	sum     uint64 (big endian) xxhash64 of every preceding byte
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/fixedcol/fixedcol/pkg/fixedvec"
)

// Codec selects the compression applied to the element payload.
type Codec uint8

const (
	// CodecNone stores the payload uncompressed.
	CodecNone Codec = iota
	// CodecSnappy compresses with snappy: fast, modest ratio.
	CodecSnappy
	// CodecZstd compresses with zstandard at the default level.
	CodecZstd
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecSnappy:
		return "snappy"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", c)
	}
}

// ParseCodec maps a codec name to its value.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "none":
		return CodecNone, nil
	case "snappy":
		return CodecSnappy, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

const (
	frameMagic   = uint32(0x46435631) // "FCV1"
	frameVersion = uint8(1)

	// magic + version + codec + two one-byte uvarints + checksum.
	minFrameLen = 4 + 1 + 1 + 1 + 1 + 8
)

var (
	// ErrBadMagic is returned when a frame does not start with the snapshot
	// magic number.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrBadVersion is returned for frames written by an unknown format
	// version.
	ErrBadVersion = errors.New("snapshot: unsupported version")

	// ErrUnknownCodec is returned for an unrecognized compression codec.
	ErrUnknownCodec = errors.New("snapshot: unknown compression codec")

	// ErrChecksumMismatch is returned when the trailing xxhash64 does not
	// match the frame contents.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

	// ErrTruncatedFrame is returned when a frame ends before its declared
	// contents do.
	ErrTruncatedFrame = errors.New("snapshot: truncated frame")
)

// MarshalFunc encodes one element.
type MarshalFunc[T any] func(T) ([]byte, error)

// UnmarshalFunc decodes one element.
type UnmarshalFunc[T any] func([]byte) (T, error)

// Strings returns marshal/unmarshal funcs for string elements.
func Strings() (MarshalFunc[string], UnmarshalFunc[string]) {
	return func(s string) ([]byte, error) { return []byte(s), nil },
		func(b []byte) (string, error) { return string(b), nil }
}

// Encode serializes v's live elements into a frame.
func Encode[T any](v *fixedvec.Vector[T], codec Codec, marshal MarshalFunc[T]) ([]byte, error) {
	var payload []byte
	var scratch [binary.MaxVarintLen64]byte
	for i, elem := range v.All() {
		enc, err := marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("snapshot: marshal element %d: %w", i, err)
		}
		n := binary.PutUvarint(scratch[:], uint64(len(enc)))
		payload = append(payload, scratch[:n]...)
		payload = append(payload, enc...)
	}

	compressed, err := compress(payload, codec)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(compressed)+minFrameLen)
	frame = binary.BigEndian.AppendUint32(frame, frameMagic)
	frame = append(frame, frameVersion, byte(codec))
	frame = binary.AppendUvarint(frame, uint64(v.Len()))
	frame = binary.AppendUvarint(frame, uint64(len(compressed)))
	frame = append(frame, compressed...)
	frame = binary.BigEndian.AppendUint64(frame, xxhash.Sum64(frame))
	return frame, nil
}

// Decode restores a frame's elements into dst, replacing its contents. The
// element count is checked against dst's capacity before any element is
// decoded, the same runtime guard cross-capacity copies apply.
func Decode[T any](frame []byte, dst *fixedvec.Vector[T], unmarshal UnmarshalFunc[T]) error {
	if len(frame) < minFrameLen {
		return ErrTruncatedFrame
	}
	if binary.BigEndian.Uint32(frame) != frameMagic {
		return ErrBadMagic
	}
	if frame[4] != frameVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, frame[4])
	}

	body := frame[:len(frame)-8]
	sum := binary.BigEndian.Uint64(frame[len(frame)-8:])
	if xxhash.Sum64(body) != sum {
		return ErrChecksumMismatch
	}

	codec := Codec(frame[5])
	rest := body[6:]
	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return ErrTruncatedFrame
	}
	rest = rest[n:]
	plen, n := binary.Uvarint(rest)
	if n <= 0 {
		return ErrTruncatedFrame
	}
	rest = rest[n:]
	if uint64(len(rest)) != plen {
		return ErrTruncatedFrame
	}
	if count > uint64(dst.Cap()) {
		return fixedvec.ErrCapacityOverflow
	}

	payload, err := decompress(rest, codec)
	if err != nil {
		return err
	}

	dst.Clear()
	for i := uint64(0); i < count; i++ {
		elen, n := binary.Uvarint(payload)
		if n <= 0 || uint64(len(payload)-n) < elen {
			return ErrTruncatedFrame
		}
		enc := payload[n : uint64(n)+elen]
		payload = payload[uint64(n)+elen:]
		elem, err := unmarshal(enc)
		if err != nil {
			return fmt.Errorf("snapshot: unmarshal element %d: %w", i, err)
		}
		if err := dst.Push(elem); err != nil {
			return err
		}
	}
	if len(payload) != 0 {
		return ErrTruncatedFrame
	}
	return nil
}

func compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return data, nil
	case CodecSnappy:
		return snappy.Encode(nil, data), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}

func decompress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return data, nil
	case CodecSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("snapshot: snappy decode: %w", err)
		}
		return out, nil
	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd decode: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}
