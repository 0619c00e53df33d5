// Package wire is a thin frame codec and per-connection session loop:
// it decodes one SQL statement per frame, runs it through the SQL
// front end / analyzer / executor, and writes back a result or error
// frame. No authentication, no extended query protocol, no COPY —
// the PostgreSQL v3 wire format proper is delegated entirely to an
// external codec; this is the minimal subset the spec calls for.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame is one (type_byte, length_u32_BE, payload) unit. Length
// covers the 4 length bytes themselves plus the payload.
type Frame struct {
	MessageType byte
	Payload     []byte
}

const (
	MessageQuery   byte = 'Q'
	MessageResult  byte = 'R'
	MessageError   byte = 'E'
	MessageCommand byte = 'C'
)

// ReadFrame reads one frame off r.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, err
	}
	msgType := header[0]
	length := binary.BigEndian.Uint32(header[1:5])
	if length < 4 {
		return Frame{}, fmt.Errorf("wire: frame length %d shorter than its own header", length)
	}
	payload := make([]byte, length-4)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Frame{}, err
	}
	return Frame{MessageType: msgType, Payload: payload}, nil
}

// WriteFrame writes f to w.
func WriteFrame(w io.Writer, f Frame) error {
	var header [5]byte
	header[0] = f.MessageType
	binary.BigEndian.PutUint32(header[1:5], uint32(len(f.Payload)+4))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(f.Payload)
	return err
}
