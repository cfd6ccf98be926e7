package midi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidPPQ is returned by [Sequence.WriteSMF] when the resolution is
// not positive.
var ErrInvalidPPQ = errors.New("resolution must be positive")

// WriteSMF writes the sequence as a format-1 standard MIDI file. Call
// [Sequence.Finalize] first; the writer emits events in stored order.
func (s *Sequence) WriteSMF(w io.Writer) error {
	if s.PPQ <= 0 {
		return fmt.Errorf("write smf: %w", ErrInvalidPPQ)
	}

	header := make([]byte, 0, 14)
	header = append(header, 'M', 'T', 'h', 'd')
	header = binary.BigEndian.AppendUint32(header, 6)
	header = binary.BigEndian.AppendUint16(header, 1)
	header = binary.BigEndian.AppendUint16(header, uint16(len(s.Tracks)))
	header = binary.BigEndian.AppendUint16(header, uint16(s.PPQ))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write smf header: %w", err)
	}

	for i, t := range s.Tracks {
		chunk := encodeTrack(t)
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write smf track %d: %w", i, err)
		}
	}
	return nil
}

func encodeTrack(t *Track) []byte {
	var data []byte

	if t.Name != "" {
		data = appendVLQ(data, 0)
		data = append(data, 0xff, 0x03, byte(len(t.Name)))
		data = append(data, t.Name...)
	}

	tick := 0
	for _, ev := range t.Events {
		delta := ev.Tick - tick
		if delta < 0 {
			delta = 0
		}
		tick = ev.Tick
		data = appendVLQ(data, uint32(delta))

		switch ev.Type {
		case NoteOn:
			data = append(data, 0x90|ev.Channel&0x0f, ev.Key&0x7f, ev.Velocity&0x7f)
		case NoteOff:
			data = append(data, 0x80|ev.Channel&0x0f, ev.Key&0x7f, ev.Velocity&0x7f)
		case TempoChange:
			usec := ev.USecPerQuarter
			data = append(data, 0xff, 0x51, 0x03,
				byte(usec>>16), byte(usec>>8), byte(usec))
		}
	}

	// End of track.
	data = appendVLQ(data, 0)
	data = append(data, 0xff, 0x2f, 0x00)

	chunk := make([]byte, 0, len(data)+8)
	chunk = append(chunk, 'M', 'T', 'r', 'k')
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(data)))
	return append(chunk, data...)
}

// appendVLQ appends a MIDI variable-length quantity: big-endian 7-bit
// groups with the continuation bit set on all but the last byte.
func appendVLQ(out []byte, v uint32) []byte {
	groups := []byte{byte(v & 0x7f)}
	for v >>= 7; v > 0; v >>= 7 {
		groups = append(groups, byte(v&0x7f|0x80))
	}
	for i := len(groups) - 1; i >= 0; i-- {
		out = append(out, groups[i])
	}
	return out
}
