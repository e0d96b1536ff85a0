package collection

import "strconv"

// NamePool is a set of taken names able to derive fresh ones.
// It is not safe for concurrent use.
type NamePool struct {
	names map[string]struct{}
}

// NewNamePool returns a pool holding names.
func NewNamePool(names ...string) *NamePool {
	p := &NamePool{names: make(map[string]struct{}, len(names))}
	p.Add(names...)
	return p
}

// Add marks names as taken.
func (p *NamePool) Add(names ...string) {
	for _, n := range names {
		p.names[n] = struct{}{}
	}
}

// Contains reports whether name is taken.
func (p *NamePool) Contains(name string) bool {
	_, ok := p.names[name]
	return ok
}

// Len returns the number of taken names.
func (p *NamePool) Len() int {
	return len(p.names)
}

// Next returns base if it is free, otherwise "base n" for the smallest
// n >= 0 not in the pool. The pool is left unchanged.
//
// At most Len()+1 candidates are probed, so Next always terminates.
func (p *NamePool) Next(base string) string {
	if !p.Contains(base) {
		return base
	}
	for n := 0; ; n++ {
		candidate := base + " " + strconv.Itoa(n)
		if !p.Contains(candidate) {
			return candidate
		}
	}
}

// Reserve is Next followed by adding the returned name to the pool.
func (p *NamePool) Reserve(base string) string {
	name := p.Next(base)
	p.Add(name)
	return name
}

// UniqueName returns a name derived from base that is not in existing.
func UniqueName(existing []string, base string) string {
	return NewNamePool(existing...).Next(base)
}
