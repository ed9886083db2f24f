package groq

import (
	"bufio"
	"bytes"
	"io"
)

// sseDecoder reads one SSE event at a time from a response body. Only `data:`
// fields matter for the completions stream; event names and ids never occur.
type sseDecoder struct {
	sc *bufio.Scanner
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseDecoder{sc: sc}
}

// Next returns the next event's data payload. Multiple `data:` lines of one
// event are joined with `\n`, per the SSE spec. It returns io.EOF when the
// body ends cleanly and the underlying read error otherwise.
func (d *sseDecoder) Next() ([]byte, error) {
	var data [][]byte
	for d.sc.Scan() {
		line := bytes.TrimSuffix(d.sc.Bytes(), []byte("\r"))

		// Blank line ends the event.
		if len(line) == 0 {
			if len(data) == 0 {
				continue
			}
			return bytes.Join(data, []byte("\n")), nil
		}
		// Comment line.
		if line[0] == ':' {
			continue
		}

		if val, ok := bytes.CutPrefix(line, []byte("data:")); ok {
			if len(val) > 0 && val[0] == ' ' {
				val = val[1:]
			}
			data = append(data, append([]byte(nil), val...))
		}
	}
	if err := d.sc.Err(); err != nil {
		return nil, err
	}
	// Flush a trailing event that was not terminated by a blank line.
	if len(data) > 0 {
		return bytes.Join(data, []byte("\n")), nil
	}
	return nil, io.EOF
}
