package access

import "sort"

// TokenSet is the effective permission set of a requester: the union over active plans.
type TokenSet map[Token]struct{}

func NewTokenSet(tokens ...Token) TokenSet {
	s := make(TokenSet, len(tokens))
	s.Add(tokens...)
	return s
}

func (s TokenSet) Add(tokens ...Token) {
	for _, t := range tokens {
		s[t] = struct{}{}
	}
}

func (s TokenSet) Has(t Token) bool {
	_, ok := s[t]
	return ok
}

func (s TokenSet) Empty() bool { return len(s) == 0 }

// Sorted returns the tokens in a stable order for responses and tests.
func (s TokenSet) Sorted() []Token {
	out := make([]Token, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
