package lsb

import (
	"errors"
	"fmt"
	"strings"
)

// Terminator marks the end of a hidden message.
const Terminator = "%%%"

var (
	ErrEmptyMessage        = errors.New("message is empty")
	ErrMessageTooLarge     = errors.New("message too large for the image")
	ErrCharacterOutOfRange = errors.New("character does not fit in a single byte")
	ErrAmbiguousMessage    = errors.New("message would end before its terminator")
)

// Frame converts message to one byte per character and appends the terminator.
// Every character must have a code point below 256, and the first "%%%" of the
// result must be the terminator itself, so a message may neither contain "%%%"
// nor end with '%'.
func Frame(message string) ([]byte, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	framed := make([]byte, 0, len(message)+len(Terminator))
	var at int
	for _, r := range message {
		if r > 0xff {
			return nil, fmt.Errorf("%w: %q (U+%04X) at %d", ErrCharacterOutOfRange, r, r, at)
		}
		framed = append(framed, byte(r))
		at++
	}
	framed = append(framed, Terminator...)
	if i := strings.Index(string(framed), Terminator); i != len(framed)-len(Terminator) {
		return nil, fmt.Errorf("%w: terminator found at byte %d", ErrAmbiguousMessage, i)
	}
	return framed, nil
}

// FramedBits returns the bit length of a framed message of chars characters.
func FramedBits(chars int) int {
	return (chars + len(Terminator)) * 8
}

// unframe maps decoded bytes back to characters with the same code points.
func unframe(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteRune(rune(v))
	}
	return sb.String()
}
