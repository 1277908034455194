/*
Package structfmt implements the compact format expressions used by record
payload codecs to read and write length-prefixed and repeated binary fields.

A format is a sequence of codes, optionally preceded by a byte order marker:

	>  or  !    big-endian (the default)
	<           little-endian

Fixed-size codes:

	- B, b: unsigned and signed 8-bit integers (uint8, int8).
	- H, h: unsigned and signed 16-bit integers (uint16, int16).
	- I, i, L, l: unsigned and signed 32-bit integers (uint32, int32).
	- Q, q: unsigned and signed 64-bit integers (uint64, int64).
	- ?: a boolean octet, 0x00 or 0x01.
	- x: a pad octet. Produces no value; encodes as 0x00.
	- Ns: a byte string of exactly N octets ([]byte).

A decimal count before an integer, bool or pad code repeats it, so "2H" is the
same as "HH".

Variable-size codes:

	- B+, H+, I+, L+, Q+: an unsigned length followed by that many octets.
	- B+(fmt): an unsigned count followed by that many repetitions of fmt.
	  Each repetition decodes to a single value when fmt yields one value,
	  otherwise to a []interface{}.
	- *: all remaining octets. Only valid as the last code of a format.

Decoding a record payload with a one octet status, a length-prefixed language
code and free text:

	values, err := structfmt.Unpack("BB+*", payload)

or directly into typed variables:

	var status uint8
	var lang string
	var text []byte
	err := structfmt.Scan("BB+*", payload, &status, &lang, &text)

Encoding is the inverse:

	octets, err := structfmt.Pack("BB+*", status, lang, text)
*/
package structfmt
