package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	digitsRegex  = regexp.MustCompile(`^\d+$`)
	lettersRegex = regexp.MustCompile(`(?i)^[a-z]+$`)

	// Greek capital alpha through full-width yen covers CJK ideographs,
	// kana, hangul and full-width punctuation; \p{Han} adds the ideograph
	// extensions outside the BMP.
	cjkRegex = regexp.MustCompile(`^[\x{0391}-\x{FFE5}\p{Han}]+$`)
)

// Required passes when value contains at least one non-whitespace character.
// Whitespace is Unicode white space plus the byte order mark, so ideographic
// and no-break spaces count as blank.
func Required(_ Context, value string, _ ...string) bool {
	return strings.TrimFunc(value, isBlank) != ""
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Digits passes when value consists of ASCII digits only.
func Digits(_ Context, value string, _ ...string) bool {
	return digitsRegex.MatchString(value)
}

// Letters passes when value consists of ASCII letters only.
func Letters(_ Context, value string, _ ...string) bool {
	return lettersRegex.MatchString(value)
}

// CJKText passes when every character falls in the CJK/full-width range or
// is a Han ideograph. Other characters outside the BMP, such as emoji, fail.
func CJKText(_ Context, value string, _ ...string) bool {
	return cjkRegex.MatchString(value)
}

// Length checks the character count against length(min[,max]).
func Length(_ Context, value string, args ...string) bool {
	return withinBounds(utf8.RuneCountInString(value), args)
}

// ByteLength checks the weighted length against byte-length(min[,max]).
// Runes above U+00FF count as 2, everything else as 1.
func ByteLength(_ Context, value string, args ...string) bool {
	n := 0
	for _, r := range value {
		if r > 0xFF {
			n += 2
		} else {
			n++
		}
	}
	return withinBounds(n, args)
}

// withinBounds reports min <= n (<= max). A missing or malformed bound fails
// the check so that a misconfigured rule never passes silently.
func withinBounds(n int, args []string) bool {
	if len(args) == 0 {
		return false
	}

	minLen, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || n < minLen {
		return false
	}

	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return true
	}

	maxLen, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return false
	}
	return n <= maxLen
}
