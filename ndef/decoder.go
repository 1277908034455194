package ndef

import (
	"bytes"
	"io"

	"ndefkit/log"
)

type decoderState int

const (
	stateAwaitFirst decoderState = iota
	stateInMessage
	stateDone
	stateFailed
)

// Decoder reads the records of one message from a byte source. It is forward
// only: decoding the same bytes again needs a new Decoder over a fresh source.
type Decoder struct {
	r     *countingReader
	opts  Options
	state decoderState
	last  Flags
	count int
	err   error
	lgr   log.Logger
}

func NewDecoder(r io.Reader, opts *Options) *Decoder {
	o := opts.withDefaults()
	return &Decoder{
		r:    newCountingReader(r),
		opts: o,
		lgr:  log.WithModule("message-decoder").Sub("policy", o.Policy.String()),
	}
}

// Next returns the next record of the message, or io.EOF once the message is
// complete. An empty source is an empty message.
func (d *Decoder) Next() (Record, error) {
	switch d.state {
	case stateDone:
		return nil, io.EOF
	case stateFailed:
		return nil, d.err
	case stateAwaitFirst:
		return d.first()
	}

	if d.last.End() {
		d.state = stateDone
		if d.last.Chunk() {
			if err := d.framingError(ErrChunkFlagOnLastRecord); err != nil {
				return nil, err
			}
		}
		return nil, io.EOF
	}

	rec, flags, err := decodeRecord(d.r, &d.opts)
	if err == io.EOF {
		d.state = stateDone
		if err := d.framingError(ErrMissingMessageEnd); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	if err != nil {
		return d.fail(err)
	}
	if flags.Begin() {
		if err := d.framingError(ErrUnexpectedMessageBegin); err != nil {
			return nil, err
		}
	}
	d.yielded(flags)
	return rec, nil
}

func (d *Decoder) first() (Record, error) {
	rec, flags, err := decodeRecord(d.r, &d.opts)
	if err == io.EOF {
		d.state = stateDone
		return nil, io.EOF
	}
	if err != nil {
		return d.fail(err)
	}
	if !flags.Begin() {
		if err := d.framingError(ErrMissingMessageBegin); err != nil {
			return nil, err
		}
	}
	d.state = stateInMessage
	d.yielded(flags)
	return rec, nil
}

func (d *Decoder) yielded(flags Flags) {
	d.last = flags
	d.count++
	d.lgr.Trace("decoded record", "index", d.count-1, "offset", d.r.Count())
}

// framingError fails the decoder under Strict and returns nil otherwise.
func (d *Decoder) framingError(kind error) error {
	err := newDecodeError("message decoder", d.r.Count(), kind, nil)
	if d.opts.Policy == Strict {
		d.state = stateFailed
		d.err = err
		return err
	}
	d.lgr.Debug("tolerating framing error", "err", err)
	return nil
}

func (d *Decoder) fail(err error) (Record, error) {
	d.err = err
	if d.opts.Policy == Ignore {
		d.state = stateDone
		d.lgr.Warn("ending message early on decode error", "records", d.count, "err", err)
		return nil, io.EOF
	}
	d.state = stateFailed
	return nil, err
}

// Err returns the error that ended decoding, including decode errors the
// Ignore policy kept from Next.
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the number of octets consumed from the source.
func (d *Decoder) Offset() int64 {
	return d.r.Count()
}

// Count returns the number of records returned so far.
func (d *Decoder) Count() int {
	return d.count
}

// DecodeMessage decodes all records of the message in data.
func DecodeMessage(data []byte, opts *Options) ([]Record, error) {
	return ReadMessage(bytes.NewReader(data), opts)
}

// ReadMessage decodes all records of the message read from r. Under the Ignore
// policy the records decoded before an error are returned without error.
func ReadMessage(r io.Reader, opts *Options) ([]Record, error) {
	dec := NewDecoder(r, opts)
	var records []Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
