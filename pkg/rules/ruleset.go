package rules

import (
	"strings"

	"github.com/scmkit/go-sparse/pkg/logger"
)

// RuleSet is an ordered collection of rules, insertion order matching file
// order. It is immutable once Parse returns; callers may share a RuleSet
// across goroutines without locking.
type RuleSet struct {
	rules    []*Rule
	caseFold bool
}

// ParseOptions control how pattern text is parsed.
type ParseOptions struct {
	// IgnoreCase folds pattern and path case during matching. It mirrors
	// the repository-wide core.ignoreCase setting and is captured by every
	// rule at parse time.
	IgnoreCase bool
}

// Parse builds a RuleSet from sparse-checkout pattern text.
//
// Lines that carry no usable rule are skipped silently: blank lines, "#"
// comments, patterns that are empty after stripping their flag characters,
// and patterns the glob engine rejects. A negated pattern without wildcards
// is dropped when no earlier rule could have included anything it names,
// since such a negation can never influence a lookup. Negations containing
// wildcards are always kept; whether they cancel an earlier rule cannot be
// verified cheaply.
func Parse(text string, opts ParseOptions) *RuleSet {
	rs := &RuleSet{caseFold: opts.IgnoreCase}

	for scan := text; scan != ""; {
		var line string
		line, scan = nextLine(scan)

		rule := parseLine(line, opts.IgnoreCase)
		if rule == nil {
			if trimmed := strings.TrimSpace(line); trimmed != "" && trimmed[0] != '#' {
				logger.Debugf("skipping unusable sparse-checkout pattern %q", line)
			}
			continue
		}

		if rule.negated && !rule.hasWildcard && !rs.negatesExisting(rule) {
			logger.Debugf("dropping dead negation %q", rule.pattern)
			continue
		}

		rs.rules = append(rs.rules, rule)
	}

	return rs
}

// negatesExisting reports whether any earlier rule could include a path that
// the given wildcard-free negation names. Earlier wildcard-free rules count
// only when they are not negations themselves and their bodies are equal
// (both sides are stripped of slash markers and case-folded by the parser).
// Earlier wildcarded rules count when their glob covers the negation's
// literal body.
func (rs *RuleSet) negatesExisting(neg *Rule) bool {
	for _, r := range rs.rules {
		if r.hasWildcard {
			if r.coversLiteral(neg.body) {
				return true
			}
			continue
		}
		if r.negated {
			continue
		}
		if r.body == neg.body {
			return true
		}
	}
	return false
}

// Len returns the number of live rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns the live rules in insertion order. The returned slice is a
// copy; the rules themselves are immutable.
func (rs *RuleSet) Rules() []*Rule {
	out := make([]*Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Patterns returns the original pattern text of every live rule in insertion
// order.
func (rs *RuleSet) Patterns() []string {
	out := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		out = append(out, r.pattern)
	}
	return out
}

// nextLine cuts text at the first line terminator, accepting LF, CRLF, and a
// lone CR, and returns the line plus the remainder.
func nextLine(text string) (line, rest string) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return text[:i], text[i+1:]
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return text[:i], text[i+2:]
			}
			return text[:i], text[i+1:]
		}
	}
	return text, ""
}
