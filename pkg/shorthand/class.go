// class.go parses single utility class tokens into structured records.
package shorthand

import (
	"strings"
)

// Importance records where an important ("!") marker was written.
type Importance int

const (
	ImportantNone     Importance = iota // no marker
	ImportantLeading                    // "!mt-4" or "hover:!mt-4"
	ImportantTrailing                   // "mt-4!" or "hover:mt-4!"
	ImportantOuter                      // "!hover:mt-4" (before the variant chain)
)

// String returns a short label used in diagnostics and JSON output.
func (i Importance) String() string {
	switch i {
	case ImportantLeading:
		return "leading"
	case ImportantTrailing:
		return "trailing"
	case ImportantOuter:
		return "outer"
	default:
		return "none"
	}
}

// ClassInfo is the parsed form of one class token.
type ClassInfo struct {
	Original  string     // token text as it appeared in the input
	Prefix    string     // variant chain including colons, e.g. "hover:md:"
	Type      string     // base utility key, e.g. "m", "border-x", "scroll-m"
	Value     string     // opaque suffix, e.g. "4", "auto", "[100px]"
	Negative  bool       // leading "-" after the variant chain
	Important Importance // important marker position

	opaque bool
}

// String re-serializes the record. For a record produced by ParseClass the
// result is byte-identical to Original.
func (c ClassInfo) String() string {
	var sb strings.Builder
	if c.Important == ImportantOuter {
		sb.WriteByte('!')
	}
	sb.WriteString(c.Prefix)
	if c.Important == ImportantLeading {
		sb.WriteByte('!')
	}
	if c.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(c.Type)
	if c.Value != "" {
		sb.WriteByte('-')
		sb.WriteString(c.Value)
	}
	if c.Important == ImportantTrailing {
		sb.WriteByte('!')
	}
	return sb.String()
}

// IsOpaque reports whether the token did not fit the class grammar. Opaque
// tokens never take part in a shorthand.
func (c ClassInfo) IsOpaque() bool {
	return c.opaque
}

// ParseClass parses a token using the default catalog's type vocabulary.
func ParseClass(token string) ClassInfo {
	return DefaultCatalog().ParseClass(token)
}

// ParseClasses parses tokens in order using the default catalog.
func ParseClasses(tokens []string) []ClassInfo {
	return DefaultCatalog().ParseClasses(tokens)
}

// ParseClasses parses every token, preserving input order.
func (c *Catalog) ParseClasses(tokens []string) []ClassInfo {
	classes := make([]ClassInfo, 0, len(tokens))
	for _, tok := range tokens {
		classes = append(classes, c.ParseClass(tok))
	}
	return classes
}

// ParseClass splits a token into variant prefix, flags, type and value.
// It never fails: tokens that do not fit the grammar come back opaque, with
// the whole token as Type.
func (c *Catalog) ParseClass(token string) ClassInfo {
	info := ClassInfo{Original: token}
	rest := token

	leading := strings.HasPrefix(rest, "!")
	trailing := len(rest) > 1 && strings.HasSuffix(rest, "!")
	if leading && trailing {
		return opaque(token)
	}
	if leading {
		rest = rest[1:]
		info.Important = ImportantLeading
	} else if trailing {
		rest = rest[:len(rest)-1]
		info.Important = ImportantTrailing
	}

	if i := lastTopLevel(rest, ':'); i >= 0 {
		info.Prefix = rest[:i+1]
		rest = rest[i+1:]
		if info.Important == ImportantLeading {
			info.Important = ImportantOuter
		}
	}

	if strings.HasPrefix(rest, "!") {
		if info.Important != ImportantNone {
			return opaque(token)
		}
		info.Important = ImportantLeading
		rest = rest[1:]
	}

	if strings.HasPrefix(rest, "-") {
		info.Negative = true
		rest = rest[1:]
	}

	if rest == "" {
		return opaque(token)
	}

	typ, value, ok := c.splitTypeValue(rest)
	if !ok {
		return opaque(token)
	}
	info.Type = typ
	info.Value = value
	return info
}

// splitTypeValue separates the utility key from its value. Known
// multi-segment keys win; otherwise the key ends at the first dash that is
// not inside brackets or parentheses.
func (c *Catalog) splitTypeValue(s string) (string, string, bool) {
	for _, kt := range c.compound {
		if s == kt {
			return kt, "", true
		}
		if strings.HasPrefix(s, kt) && s[len(kt)] == '-' && len(s) > len(kt)+1 {
			return kt, s[len(kt)+1:], true
		}
	}

	i := firstTopLevel(s, '-')
	switch {
	case i < 0:
		return s, "", true
	case i == 0 || i == len(s)-1:
		return "", "", false
	default:
		return s[:i], s[i+1:], true
	}
}

func opaque(token string) ClassInfo {
	return ClassInfo{Original: token, Type: token, opaque: true}
}

// lastTopLevel returns the index of the last sep outside [] and ().
func lastTopLevel(s string, sep byte) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}

// firstTopLevel returns the index of the first sep outside [] and ().
func firstTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
