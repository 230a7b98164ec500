package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const protocolSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewProtocol generates a ticket protocol in the YYYYMMDDHHMMSS-XXXX format
// customers quote back over any channel, e.g. 20261027103000-A1B2.
func NewProtocol(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 4; i++ {
		suffix.WriteByte(protocolSuffixAlphabet[rand.IntN(len(protocolSuffixAlphabet))])
	}
	return fmt.Sprintf("%s-%s", now.Format("20060102150405"), suffix.String())
}
