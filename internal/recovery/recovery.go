// Package recovery repairs structured text returned by an external
// generator. Responses are routinely wrapped in markdown fences or cut off
// mid-document by output-length limits; the repair pass only ever strips
// wrapping, truncates a trailing incomplete clause, or appends closing
// tokens, so a successful recovery is always a prefix-consistent subset of
// the intended document.
package recovery

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error carries both the original and best-effort repaired text so callers
// can log the failed repair for diagnostics.
type Error struct {
	Original string
	Repaired string
}

func (e *Error) Error() string {
	return fmt.Sprintf("recovery failed: repaired text is still not well-formed (%d bytes in, %d bytes out)",
		len(e.Original), len(e.Repaired))
}

// scanState is the character class the scanner is in. Escape handling is a
// state of its own so the quote/backslash interaction stays explicit: a
// backslash inside a string escapes exactly the next character and is not
// itself escaped twice.
type scanState int

const (
	stateNormal scanState = iota
	stateInString
	stateEscaped
)

// scan is the result of one left-to-right pass over a candidate document.
type scan struct {
	openStack   []byte // open container tokens in nesting order
	state       scanState
	stringStart int // byte offset of the opening quote when state != stateNormal
	lastComma   int // offset of the last comma seen outside any string, -1 if none
}

// Recover strips formatting fences from raw generator output and, when the
// remainder is not well-formed JSON, runs the repair pass. An already
// well-formed document is returned unchanged. On failure the returned
// error is a *Error holding both texts.
func Recover(raw string) (string, error) {
	cleaned := StripFences(raw)
	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	repaired := repair(cleaned)
	if json.Valid([]byte(repaired)) {
		return repaired, nil
	}

	// Second attempt: drop the trailing incomplete clause at the last
	// separator so the document ends on a complete property, then close.
	if s := scanText(cleaned); s.lastComma >= 0 {
		truncated := repair(strings.TrimRight(cleaned[:s.lastComma], " \t\r\n"))
		if json.Valid([]byte(truncated)) {
			return truncated, nil
		}
	}

	return "", &Error{Original: raw, Repaired: repaired}
}

// StripFences removes a leading and trailing triple-backtick block wrapper
// (with optional language tag) and surrounding whitespace. Interior
// content is never touched.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if newline := strings.IndexByte(s, '\n'); newline >= 0 && isFenceTag(s[:newline]) {
			s = s[newline+1:]
		}
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// isFenceTag reports whether the text between the opening fence and the
// first newline is a language tag like "json" rather than document content.
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// scanText walks the text once, tracking string/escape context and the
// container stack. Braces and brackets count only outside strings.
func scanText(s string) scan {
	sc := scan{lastComma: -1, stringStart: -1}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch sc.state {
		case stateEscaped:
			sc.state = stateInString
		case stateInString:
			switch c {
			case '\\':
				sc.state = stateEscaped
			case '"':
				sc.state = stateNormal
				sc.stringStart = -1
			}
		default: // stateNormal
			switch c {
			case '"':
				sc.state = stateInString
				sc.stringStart = i
			case '{', '[':
				sc.openStack = append(sc.openStack, c)
			case '}':
				sc.popIf('{')
			case ']':
				sc.popIf('[')
			case ',':
				sc.lastComma = i
			}
		}
	}
	return sc
}

func (sc *scan) popIf(open byte) {
	if n := len(sc.openStack); n > 0 && sc.openStack[n-1] == open {
		sc.openStack = sc.openStack[:n-1]
	}
}

// repair performs one close-in-place pass: terminate an open value string,
// drop a dangling key or separator, and append closers for every container
// still open, innermost first.
func repair(s string) string {
	sc := scanText(s)

	if sc.state != stateNormal {
		if isOpenKey(s, sc.stringStart) {
			// A key cut off mid-token cannot be completed; drop it so the
			// document ends on the previous complete property.
			s = strings.TrimRight(s[:sc.stringStart], " \t\r\n")
		} else {
			// A value cut off mid-token keeps its prefix; close the quote.
			s += `"`
		}
		sc = scanText(s)
	}

	s = trimDanglingSeparator(s)

	// Close whatever is still open, innermost container first.
	closers := make([]byte, 0, len(sc.openStack))
	for i := len(sc.openStack) - 1; i >= 0; i-- {
		if sc.openStack[i] == '{' {
			closers = append(closers, '}')
		} else {
			closers = append(closers, ']')
		}
	}
	return s + string(closers)
}

// isOpenKey reports whether the unterminated string opening at quote is an
// object key (preceded by '{' or ',') rather than a value (preceded by ':'
// or '[').
func isOpenKey(s string, quote int) bool {
	for i := quote - 1; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', ',':
			return true
		default:
			return false
		}
	}
	return false
}

// trimDanglingSeparator removes a trailing comma, or a trailing colon along
// with the key it belonged to, so the document ends on a complete property.
func trimDanglingSeparator(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return s
	}

	switch s[len(s)-1] {
	case ',':
		return strings.TrimRight(s[:len(s)-1], " \t\r\n")
	case ':':
		// Walk back over the key string preceding the colon.
		rest := strings.TrimRight(s[:len(s)-1], " \t\r\n")
		if !strings.HasSuffix(rest, `"`) {
			return rest
		}
		keyStart := openingQuote(rest)
		if keyStart < 0 {
			return rest
		}
		rest = strings.TrimRight(rest[:keyStart], " \t\r\n")
		if strings.HasSuffix(rest, ",") {
			rest = strings.TrimRight(rest[:len(rest)-1], " \t\r\n")
		}
		return rest
	}
	return s
}

// openingQuote finds the opening quote of the string that terminates at the
// end of s, honoring backslash escapes.
func openingQuote(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] != '"' {
			continue
		}
		// Count the run of backslashes before the candidate quote; an odd
		// run means the quote is escaped content, not a delimiter.
		backslashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return -1
}
