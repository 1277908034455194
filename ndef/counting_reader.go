package ndef

import "io"

type countingReader struct {
	r     io.Reader
	count int64
}

func newCountingReader(r io.Reader) *countingReader {
	if cr, ok := r.(*countingReader); ok {
		return cr
	}
	return &countingReader{
		r: r,
	}
}

func (c *countingReader) Count() int64 {
	return c.count
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}
