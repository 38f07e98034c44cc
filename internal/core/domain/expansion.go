package domain

import "sort"

// ExpansionItem is one (ident, target) pair addressing a single artifact.
type ExpansionItem struct {
	Ident  PackageIdent
	Target Target
}

// ExpansionSet is a deduplicated set of expansion items. Uniqueness is its
// only invariant; insertion order carries no meaning.
type ExpansionSet struct {
	items map[ExpansionItem]struct{}
}

// NewExpansionSet creates an empty ExpansionSet.
func NewExpansionSet() *ExpansionSet {
	return &ExpansionSet{items: make(map[ExpansionItem]struct{})}
}

// Add inserts the pair, deduplicating structurally identical entries.
func (s *ExpansionSet) Add(ident PackageIdent, target Target) {
	s.items[ExpansionItem{Ident: ident, Target: target}] = struct{}{}
}

// AddPackage inserts a resolved package and its entire dependency closure,
// each paired with the given target.
func (s *ExpansionSet) AddPackage(pkg ResolvedPackage, target Target) {
	s.Add(pkg.Ident, target)
	for _, dep := range pkg.TDeps {
		s.Add(dep, target)
	}
}

// Contains reports whether the pair is in the set.
func (s *ExpansionSet) Contains(ident PackageIdent, target Target) bool {
	_, ok := s.items[ExpansionItem{Ident: ident, Target: target}]
	return ok
}

// Len returns the number of distinct pairs.
func (s *ExpansionSet) Len() int {
	return len(s.items)
}

// Sorted returns the items ordered by ident string then target string. The
// fetch phase iterates this order so runs are deterministic.
func (s *ExpansionSet) Sorted() []ExpansionItem {
	out := make([]ExpansionItem, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(a, b int) bool {
		ia, ib := out[a].Ident.String(), out[b].Ident.String()
		if ia != ib {
			return ia < ib
		}
		return out[a].Target.String() < out[b].Target.String()
	})
	return out
}
