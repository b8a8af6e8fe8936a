package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StripComments removes // and /* */ comments from JSON source.
// Comment markers inside string literals are preserved. Rule files rely on
// this pre-processing, so it must run before every decode.
func StripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				if src[i] == '\n' {
					out = append(out, '\n')
				}
				i++
			}
			i++ // skip the closing '/'
		default:
			out = append(out, c)
		}
	}

	return out
}

// LoadJSONC reads a JSON file that may contain // and /* */ comments and
// decodes it into target. It returns an error without touching target's
// prior contents being observable: callers decode into a zero value and only
// adopt it on success.
func LoadJSONC(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(StripComments(data), target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
