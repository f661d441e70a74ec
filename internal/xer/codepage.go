package xer

// cp1252 maps the Windows-1252 code points in [0x80, 0x9F] to their Unicode
// runes; [0x00,0x7F] is plain ASCII and [0xA0,0xFF] coincides with Latin-1,
// so only this block needs a table. Byte 0x81, 0x8D, 0x8F, 0x90, 0x9D are
// undefined in cp1252 and map to the Unicode replacement character.
var cp1252 = [32]rune{
	0x20AC, 0xFFFD, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0xFFFD, 0x017D, 0xFFFD,
	0xFFFD, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0xFFFD, 0x017E, 0x0178,
}

// decodeLegacyWestern decodes a byte sequence in the legacy Western code
// page (cp1252) into a string, per spec.md section 6: invalid bytes are
// replaced, never fatal.
func decodeLegacyWestern(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		switch {
		case b < 0x80:
			runes[i] = rune(b)
		case b < 0xA0:
			runes[i] = cp1252[b-0x80]
		default:
			runes[i] = rune(b)
		}
	}
	return string(runes)
}

// encodeLegacyWestern is the inverse of decodeLegacyWestern for the
// serializer. Runes with no cp1252 representation are replaced with '?'.
func encodeLegacyWestern(s string) []byte {
	runes := []rune(s)
	out := make([]byte, 0, len(runes))
	for _, r := range runes {
		switch {
		case r < 0x80:
			out = append(out, byte(r))
		case r >= 0xA0 && r <= 0xFF:
			out = append(out, byte(r))
		default:
			if b, ok := reverseCP1252(r); ok {
				out = append(out, b)
			} else {
				out = append(out, '?')
			}
		}
	}
	return out
}

func reverseCP1252(r rune) (byte, bool) {
	for i, candidate := range cp1252 {
		if candidate == r {
			return byte(0x80 + i), true
		}
	}
	return 0, false
}
