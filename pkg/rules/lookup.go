package rules

import "strings"

// Decision is the outcome of a sparse-checkout lookup.
type Decision int

const (
	// Excluded means the path is not part of the sparse checkout. It is
	// the default when no rule matches at any level.
	Excluded Decision = iota
	// Included means the path is part of the sparse checkout.
	Included
)

// String returns "include" or "exclude".
func (d Decision) String() string {
	if d == Included {
		return "include"
	}
	return "exclude"
}

// Lookup resolves the checkout decision for a candidate path.
//
// The path is evaluated one directory level at a time, leaf first. At each
// level the rules are scanned in reverse insertion order, so the last
// matching pattern in the file wins; directory-only rules are skipped when
// the current candidate is known not to be a directory. The first match at
// any level ends the walk: a negated rule excludes, any other rule includes.
// When no rule matches, the trailing path segment is dropped and the parent
// prefix (always a directory) is evaluated, down to the first segment. The
// repository root itself is never evaluated, and a path with no match at any
// level is excluded.
func (rs *RuleSet) Lookup(p Path) Decision {
	rel := p.rel
	if rel == "" {
		return Excluded
	}

	dir := p.dir
	end := len(rel)
	for {
		prefix := rel[:end]
		for i := len(rs.rules) - 1; i >= 0; i-- {
			rule := rs.rules[i]
			if rule.dirOnly && dir == DirFlagFalse {
				continue
			}
			if rule.match(prefix) {
				if rule.negated {
					return Excluded
				}
				return Included
			}
		}

		i := strings.LastIndexByte(prefix, '/')
		if i < 0 {
			break
		}
		end = i
		dir = DirFlagTrue
	}

	return Excluded
}
