package xer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLegacyWesternASCIIRoundTrips(t *testing.T) {
	assert.Equal(t, "Hello, World!", decodeLegacyWestern([]byte("Hello, World!")))
}

func TestDecodeLegacyWesternSmartQuote(t *testing.T) {
	// 0x93 is cp1252 LEFT DOUBLE QUOTATION MARK, undefined in plain Latin-1.
	decoded := decodeLegacyWestern([]byte{0x93, 'h', 'i', 0x94})
	assert.Equal(t, "“hi”", decoded)
}

func TestEncodeLegacyWesternRoundTrip(t *testing.T) {
	original := []byte{0x93, 'h', 'i', 0x94, 0xE9}
	decoded := decodeLegacyWestern(original)
	assert.Equal(t, original, encodeLegacyWestern(decoded))
}
