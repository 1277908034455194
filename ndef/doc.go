/*
Package ndef encodes and decodes NFC Data Exchange Format messages.

A message is a sequence of records. Every record carries a type string, an
optional name and a payload:

	octet 0: MB(1) ME(1) CF(1) SR(1) IL(1) TNF(3)
	octet 1: TYPE_LENGTH
	then:    PAYLOAD_LENGTH (1 octet if SR, else 4 octets big-endian)
	then:    ID_LENGTH (1 octet, only if IL)
	then:    TYPE, ID (only if IL), PAYLOAD

Type strings select both the TNF category and the type name:

	""                  empty
	"urn:nfc:wkt:T"     NFC Forum well-known type "T"
	"text/plain"        media type
	"https://x.org/t"   absolute URI
	"urn:nfc:ext:a:b"   NFC Forum external type "a:b"
	"unknown"           unknown payload type
	"unchanged"         continuation of a chunked payload

Decoding is pull driven:

	dec := ndef.NewDecoder(r, &ndef.Options{Policy: ndef.Strict})
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		...
	}

Encoding keeps one record of lookahead so that the chunk flag of a record can
depend on the type of the record that follows it:

	enc := ndef.NewStreamEncoder(w, nil)
	for _, rec := range records {
		if _, err := enc.Push(rec); err != nil {
			return err
		}
	}
	_, err := enc.Finish()

Record types with structured payloads register a Descriptor with a Registry.
The decoder hands payloads of registered types to the descriptor and returns
*GenericRecord values for everything else.
*/
package ndef
