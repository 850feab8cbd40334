package rlwe

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/latticeforge/shortint/ring"
	"github.com/latticeforge/shortint/utils/sampling"
)

// Every entity in this package exposes the WriteTo/ReadFrom/BinarySize
// trio (§6.1), mirroring core/rlwe/metadata.go's serialization shape.
// Unlike the teacher, encoding is flat little-endian via encoding/binary
// rather than its buffer.Writer/buffer.Reader abstraction: that
// abstraction lives in a package this module does not carry over (see
// DESIGN.md), and a plain io.Writer/io.Reader pair is sufficient for the
// fixed-width uint64 slices these entities are built from.

func writeUint64Slice(w io.Writer, s []uint64) (int64, error) {
	buf := make([]byte, 8*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

func readUint64Slice(r io.Reader, s []uint64) (int64, error) {
	buf := make([]byte, 8*len(s))
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	for i := range s {
		s[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return int64(n), nil
}

// BinarySize returns the serialized size of ct in bytes.
func (ct *LWECiphertext) BinarySize() int { return 8 * len(ct.Value) }

// WriteTo implements io.WriterTo.
func (ct *LWECiphertext) WriteTo(w io.Writer) (int64, error) { return writeUint64Slice(w, ct.Value) }

// ReadFrom implements io.ReaderFrom. ct must already be sized via
// NewLWECiphertext.
func (ct *LWECiphertext) ReadFrom(r io.Reader) (int64, error) { return readUint64Slice(r, ct.Value) }

// BinarySize returns the serialized size of ct in bytes: the body plus
// the 16-byte compression seed, plus the dimension header.
func (sct *SeededLWECiphertext) BinarySize() int { return 8 + 16 + 8 }

func (sct *SeededLWECiphertext) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, sct.BinarySize())
	binary.LittleEndian.PutUint64(buf[0:], sct.Body)
	copy(buf[8:24], sct.CompressionSeed[:])
	binary.LittleEndian.PutUint64(buf[24:], uint64(sct.Dimension))
	n, err := w.Write(buf)
	return int64(n), err
}

func (sct *SeededLWECiphertext) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, sct.BinarySize())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	sct.Body = binary.LittleEndian.Uint64(buf[0:])
	var seed sampling.Seed
	copy(seed[:], buf[8:24])
	sct.CompressionSeed = seed
	sct.Dimension = int(binary.LittleEndian.Uint64(buf[24:]))
	return int64(n), nil
}

// BinarySize returns the serialized size of ct in bytes.
func (ct *GLWECiphertext) BinarySize() int {
	size := 0
	for _, p := range ct.Value {
		size += 8 * p.N()
	}
	return size
}

func (ct *GLWECiphertext) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range ct.Value {
		n, err := writeUint64Slice(w, ct.Value[i].Coeffs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (ct *GLWECiphertext) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for i := range ct.Value {
		n, err := readUint64Slice(r, ct.Value[i].Coeffs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// BinarySize returns the serialized size of sct in bytes.
func (sct *SeededGLWECiphertext) BinarySize() int {
	return 8*sct.Body.N() + 16 + 8 + 8
}

func (sct *SeededGLWECiphertext) WriteTo(w io.Writer) (int64, error) {
	n1, err := writeUint64Slice(w, sct.Body.Coeffs)
	if err != nil {
		return n1, err
	}
	hdr := make([]byte, 32)
	copy(hdr[0:16], sct.CompressionSeed[:])
	binary.LittleEndian.PutUint64(hdr[16:], uint64(sct.GLWEDimension))
	binary.LittleEndian.PutUint64(hdr[24:], uint64(sct.PolynomialSize))
	n2, err := w.Write(hdr)
	return n1 + int64(n2), err
}

func (sct *SeededGLWECiphertext) ReadFrom(r io.Reader) (int64, error) {
	n1, err := readUint64Slice(r, sct.Body.Coeffs)
	if err != nil {
		return n1, err
	}
	hdr := make([]byte, 32)
	n2, err := io.ReadFull(r, hdr)
	if err != nil {
		return n1 + int64(n2), err
	}
	var seed sampling.Seed
	copy(seed[:], hdr[0:16])
	sct.CompressionSeed = seed
	sct.GLWEDimension = int(binary.LittleEndian.Uint64(hdr[16:]))
	sct.PolynomialSize = int(binary.LittleEndian.Uint64(hdr[24:]))
	return n1 + int64(n2), nil
}

// BinarySize returns the serialized size of sk in bytes.
func (sk *SecretKey) BinarySize() int { return 8 * len(sk.Value) }

func (sk *SecretKey) WriteTo(w io.Writer) (int64, error) { return writeUint64Slice(w, sk.Value) }

func (sk *SecretKey) ReadFrom(r io.Reader) (int64, error) { return readUint64Slice(r, sk.Value) }

// BinarySize returns the serialized size of sk in bytes.
func (sk *GLWESecretKey) BinarySize() int {
	size := 0
	for _, p := range sk.Value {
		size += 8 * p.N()
	}
	return size
}

func (sk *GLWESecretKey) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range sk.Value {
		n, err := writeUint64Slice(w, sk.Value[i].Coeffs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (sk *GLWESecretKey) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for i := range sk.Value {
		n, err := readUint64Slice(r, sk.Value[i].Coeffs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// BinarySize returns the serialized size of ksk in bytes, including
// its InputDim/OutputDim/Gadget header.
func (ksk *KeySwitchingKey) BinarySize() int {
	size := 24 // InputDim, OutputDim, Gadget{BaseLog,LevelCount} packed as 4 uint32-ish fields -> kept as 4x8 for simplicity below
	for _, row := range ksk.Value {
		for _, ct := range row {
			size += ct.BinarySize()
		}
	}
	return size
}

func (ksk *KeySwitchingKey) WriteTo(w io.Writer) (int64, error) {
	hdr := make([]byte, 24)
	binary.LittleEndian.PutUint64(hdr[0:], uint64(ksk.InputDim))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(ksk.OutputDim))
	binary.LittleEndian.PutUint32(hdr[16:], uint32(ksk.Gadget.BaseLog))
	binary.LittleEndian.PutUint32(hdr[20:], uint32(ksk.Gadget.LevelCount))
	n, err := w.Write(hdr)
	total := int64(n)
	if err != nil {
		return total, err
	}
	for i := range ksk.Value {
		for l := range ksk.Value[i] {
			n, err := ksk.Value[i][l].WriteTo(w)
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func (ksk *KeySwitchingKey) ReadFrom(r io.Reader) (int64, error) {
	hdr := make([]byte, 24)
	n, err := io.ReadFull(r, hdr)
	total := int64(n)
	if err != nil {
		return total, err
	}
	inDim := int(binary.LittleEndian.Uint64(hdr[0:]))
	outDim := int(binary.LittleEndian.Uint64(hdr[8:]))
	gadget := ring.Gadget{
		BaseLog:    int(binary.LittleEndian.Uint32(hdr[16:])),
		LevelCount: int(binary.LittleEndian.Uint32(hdr[20:])),
	}
	if inDim != ksk.InputDim || outDim != ksk.OutputDim || gadget != ksk.Gadget {
		return total, fmt.Errorf("rlwe: key-switching key geometry mismatch on read")
	}
	for i := range ksk.Value {
		for l := range ksk.Value[i] {
			n, err := ksk.Value[i][l].ReadFrom(r)
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}
