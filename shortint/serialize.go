package shortint

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/latticeforge/shortint/core/rlwe"
)

// Ciphertext and SeededCiphertext expose the WriteTo/ReadFrom/BinarySize
// trio (§6.1), layering a small metadata header (message_modulus,
// carry_modulus, degree, pbs_order) on top of core/rlwe's own
// LWECiphertext/SeededLWECiphertext serialization.

const ciphertextHeaderSize = 8 + 8 + 8 + 1

func (ct *Ciphertext) writeHeader(w io.Writer) (int64, error) {
	buf := make([]byte, ciphertextHeaderSize)
	binary.LittleEndian.PutUint64(buf[0:], ct.MessageModulus)
	binary.LittleEndian.PutUint64(buf[8:], ct.CarryModulus)
	binary.LittleEndian.PutUint64(buf[16:], ct.Degree)
	buf[24] = byte(ct.PBSOrder)
	n, err := w.Write(buf)
	return int64(n), err
}

func (ct *Ciphertext) readHeader(r io.Reader) (int64, error) {
	buf := make([]byte, ciphertextHeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	ct.MessageModulus = binary.LittleEndian.Uint64(buf[0:])
	ct.CarryModulus = binary.LittleEndian.Uint64(buf[8:])
	ct.Degree = binary.LittleEndian.Uint64(buf[16:])
	ct.PBSOrder = PBSOrder(buf[24])
	return int64(n), nil
}

// BinarySize returns the serialized size of ct in bytes.
func (ct *Ciphertext) BinarySize() int {
	return ciphertextHeaderSize + ct.Value.BinarySize()
}

// WriteTo implements io.WriterTo.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	n1, err := ct.writeHeader(w)
	if err != nil {
		return n1, err
	}
	n2, err := ct.Value.WriteTo(w)
	return n1 + n2, err
}

// ReadFrom implements io.ReaderFrom. ct.Value must already be sized via
// rlwe.NewLWECiphertext before calling ReadFrom.
func (ct *Ciphertext) ReadFrom(r io.Reader) (int64, error) {
	n1, err := ct.readHeader(r)
	if err != nil {
		return n1, err
	}
	if ct.Value == nil {
		return n1, fmt.Errorf("shortint: ciphertext value must be pre-sized before ReadFrom")
	}
	n2, err := ct.Value.ReadFrom(r)
	return n1 + n2, err
}

// BinarySize returns the serialized size of sct in bytes.
func (sct *SeededCiphertext) BinarySize() int {
	return ciphertextHeaderSize + sct.Value.BinarySize()
}

func (sct *SeededCiphertext) writeHeader(w io.Writer) (int64, error) {
	buf := make([]byte, ciphertextHeaderSize)
	binary.LittleEndian.PutUint64(buf[0:], sct.MessageModulus)
	binary.LittleEndian.PutUint64(buf[8:], sct.CarryModulus)
	binary.LittleEndian.PutUint64(buf[16:], sct.Degree)
	buf[24] = byte(sct.PBSOrder)
	n, err := w.Write(buf)
	return int64(n), err
}

func (sct *SeededCiphertext) readHeader(r io.Reader) (int64, error) {
	buf := make([]byte, ciphertextHeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	sct.MessageModulus = binary.LittleEndian.Uint64(buf[0:])
	sct.CarryModulus = binary.LittleEndian.Uint64(buf[8:])
	sct.Degree = binary.LittleEndian.Uint64(buf[16:])
	sct.PBSOrder = PBSOrder(buf[24])
	return int64(n), nil
}

// WriteTo implements io.WriterTo.
func (sct *SeededCiphertext) WriteTo(w io.Writer) (int64, error) {
	n1, err := sct.writeHeader(w)
	if err != nil {
		return n1, err
	}
	n2, err := sct.Value.WriteTo(w)
	return n1 + n2, err
}

// ReadFrom implements io.ReaderFrom. sct.Value must already be
// allocated (e.g. &rlwe.SeededLWECiphertext{}) before calling ReadFrom.
func (sct *SeededCiphertext) ReadFrom(r io.Reader) (int64, error) {
	n1, err := sct.readHeader(r)
	if err != nil {
		return n1, err
	}
	if sct.Value == nil {
		sct.Value = &rlwe.SeededLWECiphertext{}
	}
	n2, err := sct.Value.ReadFrom(r)
	return n1 + n2, err
}
