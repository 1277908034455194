package ndef

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Flags are the flag bits of a record's first octet.
type Flags uint8

const (
	FlagMB Flags = 0x80
	FlagME Flags = 0x40
	FlagCF Flags = 0x20
	FlagSR Flags = 0x10
	FlagIL Flags = 0x08

	tnfMask = 0x07
)

func (f Flags) Begin() bool {
	return f&FlagMB != 0
}

func (f Flags) End() bool {
	return f&FlagME != 0
}

func (f Flags) Chunk() bool {
	return f&FlagCF != 0
}

func (f Flags) Short() bool {
	return f&FlagSR != 0
}

func (f Flags) HasID() bool {
	return f&FlagIL != 0
}

const maxShortPayloadLen = 255

// EncodeRecord encodes rec as one record with the MB, ME and CF bits taken from
// flags. SR and IL are computed. Nothing is returned on error.
func EncodeRecord(rec Record, flags Flags, opts *Options) ([]byte, error) {
	o := opts.withDefaults()

	cat, typeName, err := ToWire(rec.Type())
	if err != nil {
		return nil, err
	}
	payload, err := rec.Payload()
	if err != nil {
		return nil, newEncodeError("record payload", ErrInvalidPayload, errors.Wrapf(err, "type %q", rec.Type()))
	}
	if len(payload) > o.MaxPayloadLen || uint64(len(payload)) > math.MaxUint32 {
		return nil, newEncodeError("record payload", ErrPayloadTooLarge,
			errors.Errorf("%d octets, limit is %d", len(payload), o.MaxPayloadLen))
	}
	id, err := encodeName(rec.Name())
	if err != nil {
		return nil, err
	}

	switch cat {
	case CategoryEmpty:
		if len(id) > 0 || len(payload) > 0 {
			return nil, newEncodeError("record header", ErrInvalidRecord, errors.New("empty record with name or payload"))
		}
	case CategoryUnchanged:
		id = nil
	}

	header := byte(flags&(FlagMB|FlagME|FlagCF)) | byte(cat)
	if len(payload) <= maxShortPayloadLen {
		header |= byte(FlagSR)
	}
	if len(id) > 0 {
		header |= byte(FlagIL)
	}

	var buf bytes.Buffer
	buf.Grow(6 + len(typeName) + len(id) + len(payload))
	buf.WriteByte(header)
	buf.WriteByte(byte(len(typeName)))
	if Flags(header).Short() {
		buf.WriteByte(byte(len(payload)))
	} else {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(payload)))
		buf.Write(l[:])
	}
	if len(id) > 0 {
		buf.WriteByte(byte(len(id)))
	}
	buf.Write(typeName)
	buf.Write(id)
	buf.Write(payload)
	return buf.Bytes(), nil
}

// WriteRecord encodes rec and writes it to w in one call.
func WriteRecord(w io.Writer, rec Record, flags Flags, opts *Options) (int, error) {
	b, err := EncodeRecord(rec, flags, opts)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

// DecodeRecord reads one record from r. It returns io.EOF if r is exhausted
// before the first octet. Payloads of types registered in opts.Registry are
// decoded by their Descriptor unless the record is a chunk.
func DecodeRecord(r io.Reader, opts *Options) (Record, Flags, error) {
	o := opts.withDefaults()
	return decodeRecord(newCountingReader(r), &o)
}

func decodeRecord(cr *countingReader, o *Options) (Record, Flags, error) {
	start := cr.Count()
	var first [1]byte
	if _, err := io.ReadFull(cr, first[:]); err != nil {
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		return nil, 0, readError(cr, err)
	}
	flags := Flags(first[0] &^ tnfMask)
	cat := Category(first[0] & tnfMask)
	if cat == categoryReserved {
		return nil, flags, newDecodeError("record header", start, ErrInvalidCategory, errors.Errorf("category %d", cat))
	}

	typeLen, err := readUint8(cr)
	if err != nil {
		return nil, flags, err
	}
	var payloadLen uint32
	if flags.Short() {
		l, err := readUint8(cr)
		if err != nil {
			return nil, flags, err
		}
		payloadLen = uint32(l)
	} else {
		var l [4]byte
		if _, err := io.ReadFull(cr, l[:]); err != nil {
			return nil, flags, readError(cr, err)
		}
		payloadLen = binary.BigEndian.Uint32(l[:])
	}
	var idLen uint8
	if flags.HasID() {
		if idLen, err = readUint8(cr); err != nil {
			return nil, flags, err
		}
	}

	switch cat {
	case CategoryEmpty, CategoryUnknown, CategoryUnchanged:
		if typeLen != 0 {
			return nil, flags, newDecodeError("record header", start, ErrInvalidHeader,
				errors.Errorf("%s record with type length %d", cat, typeLen))
		}
		if cat == CategoryEmpty && (idLen != 0 || payloadLen != 0) {
			return nil, flags, newDecodeError("record header", start, ErrInvalidHeader,
				errors.Errorf("empty record with id length %d and payload length %d", idLen, payloadLen))
		}
	default:
		if typeLen == 0 {
			return nil, flags, newDecodeError("record header", start, ErrInvalidHeader,
				errors.Errorf("%s record without type", cat))
		}
	}
	if uint64(payloadLen) > uint64(o.MaxPayloadLen) {
		return nil, flags, newDecodeError("record header", start, ErrPayloadTooLarge,
			errors.Errorf("%d octets, limit is %d", payloadLen, o.MaxPayloadLen))
	}

	typeName, err := readN(cr, int(typeLen))
	if err != nil {
		return nil, flags, err
	}
	id, err := readN(cr, int(idLen))
	if err != nil {
		return nil, flags, err
	}
	payload, err := readN(cr, int(payloadLen))
	if err != nil {
		return nil, flags, err
	}

	typ, err := FromWire(cat, typeName)
	if err != nil {
		return nil, flags, err
	}
	name := decodeName(id)

	if !flags.Chunk() {
		if d, ok := o.Registry.Lookup(typ); ok {
			if err := d.checkLen(len(payload)); err != nil {
				return nil, flags, newDecodeError("record payload", start, ErrPayloadLengthOutOfRange,
					errors.Wrapf(err, "type %q", typ))
			}
			rec, err := d.Decode(payload, o)
			if err != nil {
				return nil, flags, newDecodeError("record payload", start, ErrInvalidPayload,
					errors.Wrapf(err, "type %q", typ))
			}
			rec.SetName(name)
			return rec, flags, nil
		}
	}

	return &GenericRecord{
		RecordBase: RecordBase{typ: typ, name: name},
		Data:       payload,
	}, flags, nil
}

func readUint8(cr *countingReader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(cr, b[:]); err != nil {
		return 0, readError(cr, err)
	}
	return b[0], nil
}

func readN(cr *countingReader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(cr, buf); err != nil {
		return nil, readError(cr, err)
	}
	return buf, nil
}

func readError(cr *countingReader, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return newDecodeError("record header", cr.Count(), ErrUnexpectedEOF, nil)
	}
	return newDecodeError("record header", cr.Count(), ErrRead, err)
}
