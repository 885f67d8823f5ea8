package utils

// Byte-level ASCII case tables. A zero entry means the byte has no
// counterpart in the other case.
var (
	upperToLower [256]byte
	lowerToUpper [256]byte
)

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		upperToLower[c] = byte(c) + ('a' - 'A')
	}
	for c := 'a'; c <= 'z'; c++ {
		lowerToUpper[c] = byte(c) - ('a' - 'A')
	}
}

// IsUpper reports whether c is an ASCII uppercase letter.
func IsUpper(c byte) bool {
	return upperToLower[c] != 0
}

// IsLower reports whether c is an ASCII lowercase letter.
func IsLower(c byte) bool {
	return lowerToUpper[c] != 0
}

// ToLower maps uppercase ASCII letters to lowercase, other bytes are returned as is.
func ToLower(c byte) byte {
	if l := upperToLower[c]; l != 0 {
		return l
	}
	return c
}

// ToUpper maps lowercase ASCII letters to uppercase, other bytes are returned as is.
func ToUpper(c byte) byte {
	if u := lowerToUpper[c]; u != 0 {
		return u
	}
	return c
}

// IsLetter reports whether c is an ASCII letter of either case.
func IsLetter(c byte) bool {
	return IsUpper(c) || IsLower(c)
}

// IsASCII reports whether every byte of s is below 0x80.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
