package utils

import "crypto/rand"

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxTokenByte is the largest byte value that maps onto the alphabet without
// modulo bias; larger values are rejected and redrawn.
const maxTokenByte = 255 - (256 % len(tokenAlphabet))

// ConfirmationTokenLength is the fixed length of the opaque confirmation and
// reset-password tokens persisted on the user record.
const ConfirmationTokenLength = 16

// NewRandomToken returns an opaque random token of n characters, drawn
// uniformly from the alphabet.
func NewRandomToken(n int) string {
	token := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(token) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}

		for _, b := range buf {
			if int(b) > maxTokenByte {
				continue
			}

			token = append(token, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(token) == n {
				break
			}
		}
	}

	return string(token)
}
