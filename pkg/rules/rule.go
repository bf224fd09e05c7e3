// Package rules implements sparse-checkout pattern parsing and path lookup.
//
// A rule set is parsed from pattern-file text once and is immutable
// afterwards. Lookup walks a candidate path from the leaf to the root,
// scanning the rules in reverse insertion order at every directory level; the
// first matching rule decides whether the path is included in or excluded
// from the checkout, and no match at any level means excluded.
package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// wildcardChars are the bytes that make a pattern body a wildcard pattern.
// The backslash counts because it escapes whatever follows it.
const wildcardChars = "*?[\\"

// Rule is a single parsed sparse-checkout pattern. Rules are immutable once
// constructed.
type Rule struct {
	// pattern is the line as written (after trailing-space trimming),
	// kept for display.
	pattern string

	// body is the match text: pattern minus the leading "!", a leading
	// "/", and a trailing "/". Lowercased when caseFold is set.
	body string

	negated     bool
	dirOnly     bool
	fullPath    bool
	hasWildcard bool
	caseFold    bool
}

// Pattern returns the rule's original pattern text.
func (r *Rule) Pattern() string { return r.pattern }

// Negated reports whether the rule drops matching paths from the checkout.
func (r *Rule) Negated() bool { return r.negated }

// DirOnly reports whether the rule applies to directories only.
func (r *Rule) DirOnly() bool { return r.dirOnly }

// HasWildcard reports whether the rule's body contains glob metacharacters.
func (r *Rule) HasWildcard() bool { return r.hasWildcard }

// parseLine turns one pattern-file line into a Rule. It returns nil for
// lines that carry no rule: blank lines, "#" comments, patterns that are
// empty once their flag characters are stripped, and patterns the glob
// engine rejects as malformed.
func parseLine(line string, caseFold bool) *Rule {
	if line == "" || line[0] == '#' {
		return nil
	}

	pattern := trimTrailingSpace(line)
	if pattern == "" {
		return nil
	}

	r := &Rule{pattern: pattern, caseFold: caseFold}
	body := pattern

	// A leading unescaped "!" negates; "\!" stays a literal bang.
	if body[0] == '!' {
		r.negated = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "/") {
		r.dirOnly = true
		body = body[:len(body)-1]
	}
	// A leading "/" anchors the pattern to the level being matched, as
	// does any interior slash.
	if strings.HasPrefix(body, "/") {
		r.fullPath = true
		body = body[1:]
	}
	if strings.ContainsRune(body, '/') {
		r.fullPath = true
	}

	if body == "" {
		return nil
	}
	if strings.ContainsAny(body, wildcardChars) {
		r.hasWildcard = true
	}
	if !doublestar.ValidatePattern(body) {
		return nil
	}
	if caseFold {
		body = asciiLower(body)
	}
	r.body = body

	return r
}

// match reports whether the rule matches the given prefix. The prefix uses
// forward slashes and carries no leading or trailing slash. Full-path rules
// match the whole prefix (wildcards do not cross "/"); basename rules match
// only its final segment.
func (r *Rule) match(prefix string) bool {
	candidate := prefix
	if r.caseFold {
		candidate = asciiLower(candidate)
	}

	if r.fullPath {
		ok, err := doublestar.Match(r.body, candidate)
		return err == nil && ok
	}

	base := candidate
	if i := strings.LastIndexByte(candidate, '/'); i >= 0 {
		base = candidate[i+1:]
	}
	ok, err := doublestar.Match(r.body, base)
	return err == nil && ok
}

// coversLiteral reports whether this wildcarded rule could match the literal
// body of a negation. Both sides are already case-folded at parse time.
// Basename rules additionally try the literal's final segment, since they
// are matched against basenames during lookup.
func (r *Rule) coversLiteral(text string) bool {
	if ok, err := doublestar.Match(r.body, text); err == nil && ok {
		return true
	}
	if r.fullPath {
		return false
	}
	if i := strings.LastIndexByte(text, '/'); i >= 0 {
		ok, err := doublestar.Match(r.body, text[i+1:])
		return err == nil && ok
	}
	return false
}

// trimTrailingSpace drops trailing spaces and tabs, keeping a final space
// that is escaped with a backslash.
func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c != ' ' && c != '\t' {
			break
		}
		if end >= 2 && s[end-2] == '\\' {
			break
		}
		end--
	}
	return s[:end]
}

// asciiLower lowercases ASCII letters without allocating when the string is
// already lower case.
func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
