package asset

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// UnknownRequirementError is returned when a selection token matches no
// requirement label or path.
type UnknownRequirementError struct {
	Token string
}

func (e *UnknownRequirementError) Error() string {
	return fmt.Sprintf("unknown requirement '%s'. Use --list to see options.", e.Token)
}

// Select resolves user supplied tokens against the table. With no tokens the
// whole table is returned in table order; otherwise matches are returned in
// the order the tokens were given.
//
// A token matches a label case-insensitively or a path exactly. Tokens with
// glob characters that match neither are matched against paths and expand to
// every hit in table order.
func Select(table []Requirement, tokens []string) ([]Requirement, error) {
	if len(tokens) == 0 {
		return table, nil
	}

	labels := make(map[string]Requirement, len(table))
	paths := make(map[string]Requirement, len(table))
	for _, req := range table {
		labels[strings.ToLower(req.Label)] = req
		paths[req.Path] = req
	}

	selected := make([]Requirement, 0, len(tokens))
	for _, token := range tokens {
		if req, ok := labels[strings.ToLower(token)]; ok {
			selected = append(selected, req)
			continue
		}
		if req, ok := paths[token]; ok {
			selected = append(selected, req)
			continue
		}

		matches := matchGlob(table, token)
		if len(matches) == 0 {
			return nil, &UnknownRequirementError{Token: token}
		}
		selected = append(selected, matches...)
	}

	return selected, nil
}

func matchGlob(table []Requirement, pattern string) []Requirement {
	if !strings.ContainsAny(pattern, "*?[{") || !doublestar.ValidatePattern(pattern) {
		return nil
	}

	var matches []Requirement
	for _, req := range table {
		if ok, err := doublestar.Match(pattern, req.Path); err == nil && ok {
			matches = append(matches, req)
		}
	}
	return matches
}
