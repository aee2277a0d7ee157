package geoguess

// defaultSpecialPairs are enclaves, microstates and territories whose
// vertex distance to the surrounding country says little about how a player
// would think of them. They always match each other.
var defaultSpecialPairs = [][2]string{
	{"South Africa", "Lesotho"},
	{"Italy", "Vatican"},
	{"Italy", "San Marino"},
	{"France", "Monaco"},
	{"Spain", "Gibraltar"},
	{"China", "Hong Kong"},
	{"China", "Macau"},
}

// SpecialPairs is a set of unordered country pairs treated as always matching.
// The zero value is an empty set. Lookups are case-insensitive.
type SpecialPairs struct {
	set map[pairKey]struct{}
}

// NewSpecialPairs builds a set from the given pairs.
func NewSpecialPairs(pairs ...[2]string) SpecialPairs {
	return SpecialPairs{}.With(pairs...)
}

// DefaultSpecialPairs returns the built-in enclave and territory table.
func DefaultSpecialPairs() SpecialPairs {
	return NewSpecialPairs(defaultSpecialPairs...)
}

// With returns a copy of s extended with pairs. Pairs naming the same
// country twice are ignored.
func (s SpecialPairs) With(pairs ...[2]string) SpecialPairs {
	out := SpecialPairs{set: make(map[pairKey]struct{}, len(s.set)+len(pairs))}
	for k := range s.set {
		out.set[k] = struct{}{}
	}
	for _, p := range pairs {
		key := newPairKey(p[0], p[1])
		if key.lo == "" || key.lo == key.hi {
			continue
		}
		out.set[key] = struct{}{}
	}
	return out
}

// Contains reports whether a and b form a special pair, in either order.
func (s SpecialPairs) Contains(a, b string) bool {
	_, ok := s.set[newPairKey(a, b)]
	return ok
}

// Len returns the number of pairs in the set.
func (s SpecialPairs) Len() int {
	return len(s.set)
}
