package proto

import "unicode/utf8"

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline, at most limit bytes.
// - Lines that do not fit are cut at a rune boundary.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(line string, limit int) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if limit >= 0 && len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}
