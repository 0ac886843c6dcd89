package resolve

import "strings"

// Marker is the wildcard character of a pattern.
const Marker = '*'

// Pattern is a wildcard expression split around its marker.
type Pattern struct {
	// Raw is the pattern as supplied by the caller.
	Raw string
	// Prefix is the literal text before the marker, used as the listing prefix.
	Prefix string
	// Suffix is appended to every common prefix when HasSuffix is set.
	Suffix string
	// HasSuffix is false when the marker is the final character.
	HasSuffix bool
}

// ParsePattern splits raw around its single wildcard marker.
func ParsePattern(raw string) (Pattern, error) {
	idx := strings.IndexByte(raw, Marker)
	if idx < 0 {
		return Pattern{}, &PatternError{Pattern: raw, Reason: "missing wildcard marker"}
	}
	if strings.IndexByte(raw[idx+1:], Marker) >= 0 {
		return Pattern{}, &PatternError{Pattern: raw, Reason: "more than one wildcard marker"}
	}

	p := Pattern{Raw: raw, Prefix: raw[:idx]}
	if idx < len(raw)-1 {
		// The marker is followed by a one-character separator that the
		// common prefixes already end with.
		p.Suffix = raw[idx+2:]
		p.HasSuffix = true
	}
	return p, nil
}

// ParsePatterns parses every pattern, stopping at the first malformed one.
func ParsePatterns(raw []string) ([]Pattern, error) {
	parsed := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePattern(r)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// Prefixes returns the distinct listing prefixes of raw in input order.
func Prefixes(raw []string) ([]string, error) {
	parsed, err := ParsePatterns(raw)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(parsed))
	prefixes := make([]string, 0, len(parsed))
	for _, p := range parsed {
		if seen[p.Prefix] {
			continue
		}
		seen[p.Prefix] = true
		prefixes = append(prefixes, p.Prefix)
	}
	return prefixes, nil
}

// Expand returns the key matched under one common prefix.
func (p Pattern) Expand(commonPrefix string) string {
	return commonPrefix + p.Suffix
}

func (p Pattern) String() string {
	return p.Raw
}
