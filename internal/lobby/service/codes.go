package service

import (
	"crypto/rand"
)

// codeAlphabet omits 0/O and 1/I/L so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	visitorCodePrefix = "VIS-"
	visitorCodeLength = 8
	guestCodeLength   = 6
)

func randomCode(n int) (string, error) {
	out := make([]byte, n)
	buf := make([]byte, n*2)
	i := 0
	for i < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// Rejection sampling keeps the distribution uniform.
			if int(b) >= 256-256%len(codeAlphabet) {
				continue
			}
			out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
			i++
			if i == n {
				break
			}
		}
	}
	return string(out), nil
}
