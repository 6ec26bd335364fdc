package service

import (
	"math/rand/v2"
	"strings"
)

// codeAlphabet is the 32-symbol set room codes are drawn from. The
// ambiguous glyphs 0/1/O/I are excluded so codes survive being read aloud
// or scribbled on a fridge note.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// maxCodeAttempts caps collision retries. With a 32^6 code space this is
// unreachable unless the store holds on the order of a billion rooms.
const maxCodeAttempts = 100

// generateCode returns a random room code. Codes are share tokens, not
// secrets, so math/rand is sufficient.
func generateCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}
