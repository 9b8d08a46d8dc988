//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Portions copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "fmt"

// DefaultNameBudget is the number of random attempts before a unique-name
// draw falls back to a counter suffix.
const DefaultNameBudget = 10

// NameResult is the outcome of a unique-name attempt. Fallback is true when
// the retry budget was exhausted and a counter suffix was appended to the
// last candidate; such names look non-random, which is accepted.
type NameResult struct {
	Name     string
	Fallback bool
}

// UniqueNamer hands out names that are unique within a scope (global SKUs,
// per-country territory names, and so on). It is not safe for concurrent
// use; generation is single-threaded.
type UniqueNamer struct {
	scopes map[string]map[string]struct{}
}

// NewUniqueNamer creates an empty namer.
func NewUniqueNamer() *UniqueNamer {
	return &UniqueNamer{scopes: make(map[string]map[string]struct{})}
}

func (n *UniqueNamer) scope(name string) map[string]struct{} {
	s, ok := n.scopes[name]
	if !ok {
		s = make(map[string]struct{})
		n.scopes[name] = s
	}
	return s
}

// Attempt draws candidates from gen until one is unused within scope or the
// budget is exhausted. On exhaustion it forces uniqueness by appending an
// increasing counter to the last candidate, so it always terminates.
func (n *UniqueNamer) Attempt(scope string, budget int, gen func() string) NameResult {
	if budget < 1 {
		budget = DefaultNameBudget
	}
	s := n.scope(scope)

	var last string
	for i := 0; i < budget; i++ {
		last = gen()
		if _, taken := s[last]; !taken {
			s[last] = struct{}{}
			return NameResult{Name: last}
		}
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s %d", last, i)
		if _, taken := s[candidate]; !taken {
			s[candidate] = struct{}{}
			return NameResult{Name: candidate, Fallback: true}
		}
	}
}

// Claim records an externally built name; it returns false when the name
// was already taken in the scope.
func (n *UniqueNamer) Claim(scope, name string) bool {
	s := n.scope(scope)
	if _, taken := s[name]; taken {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Count reports how many names have been handed out in a scope.
func (n *UniqueNamer) Count(scope string) int {
	return len(n.scopes[scope])
}
