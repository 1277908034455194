package ndef

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Encoder turns a sequence of records into the octets of one message. The
// chunk flag of a record depends on the type of the record after it, so each
// record is held back until the next one is pushed or Finish is called.
type Encoder struct {
	opts    Options
	pending Record
	index   int
	err     error
}

func NewEncoder(opts *Options) *Encoder {
	return &Encoder{
		opts: opts.withDefaults(),
	}
}

// Push adds rec to the message and returns the encoding of the record pushed
// before it, or nil for the first record.
func (e *Encoder) Push(rec Record) ([]byte, error) {
	if e.err != nil {
		return nil, errors.Wrap(ErrEncoderFailed, e.err.Error())
	}
	if rec == nil {
		return nil, newEncodeError("message encoder", ErrInvalidRecord, errors.New("nil record"))
	}
	if e.pending == nil {
		e.pending = rec
		return nil, nil
	}

	var flags Flags
	if e.index == 0 {
		flags |= FlagMB
	}
	if rec.Type() == TypeUnchanged {
		flags |= FlagCF
	}
	b, err := EncodeRecord(e.pending, flags, &e.opts)
	if err != nil {
		e.err = err
		return nil, err
	}
	e.pending = rec
	e.index++
	return b, nil
}

// Finish returns the encoding of the last pushed record with the message end
// flag set, and resets e for the next message. It returns nil if no record
// was pushed.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		err := e.err
		e.reset()
		return nil, errors.Wrap(ErrEncoderFailed, err.Error())
	}
	if e.pending == nil {
		return nil, nil
	}

	flags := FlagME
	if e.index == 0 {
		flags |= FlagMB
	}
	b, err := EncodeRecord(e.pending, flags, &e.opts)
	e.reset()
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (e *Encoder) reset() {
	e.pending = nil
	e.index = 0
	e.err = nil
}

// StreamEncoder is an Encoder that writes each record to w as soon as its flags
// are known and reports the number of octets written.
type StreamEncoder struct {
	w   io.Writer
	enc *Encoder
}

func NewStreamEncoder(w io.Writer, opts *Options) *StreamEncoder {
	return &StreamEncoder{
		w:   w,
		enc: NewEncoder(opts),
	}
}

func (s *StreamEncoder) Push(rec Record) (int, error) {
	b, err := s.enc.Push(rec)
	if err != nil || b == nil {
		return 0, err
	}
	return s.w.Write(b)
}

func (s *StreamEncoder) Finish() (int, error) {
	b, err := s.enc.Finish()
	if err != nil || b == nil {
		return 0, err
	}
	return s.w.Write(b)
}

// EncodeMessage encodes records as one message. No records encode to no
// octets.
func EncodeMessage(records []Record, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, records, opts); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// WriteMessage writes records to w as one message and returns the number of
// octets written. A record that fails to encode writes nothing.
func WriteMessage(w io.Writer, records []Record, opts *Options) (int, error) {
	enc := NewStreamEncoder(w, opts)
	total := 0
	for _, rec := range records {
		n, err := enc.Push(rec)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := enc.Finish()
	total += n
	return total, err
}
