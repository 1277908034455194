package cli

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// ReadMessageInput returns the message octets given on the command line or,
// without arguments, read from stdin. Input is hex unless binary is set;
// whitespace between hex digits is ignored.
func ReadMessageInput(args []string, binary bool) ([]byte, error) {
	var raw []byte
	if len(args) > 0 {
		raw = []byte(strings.Join(args, ""))
	} else if isatty.IsTerminal(os.Stdin.Fd()) {
		raw = readDataTTY(os.Stdin)
	} else {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "error reading stdin")
		}
		raw = data
	}
	if binary {
		return raw, nil
	}
	return ParseHex(raw)
}

func ParseHex(raw []byte) ([]byte, error) {
	compact := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	compact = bytes.TrimPrefix(compact, []byte("0x"))
	out := make([]byte, hex.DecodedLen(len(compact)))
	if _, err := hex.Decode(out, compact); err != nil {
		return nil, errors.Wrap(err, "invalid hex input")
	}
	return out, nil
}

func readDataTTY(r io.Reader) []byte {
	fmt.Println("Paste or type the hex encoded message below.")
	fmt.Println("When you are finished, press Ctrl+D.")

	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		buf.Write(scanner.Bytes())
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
