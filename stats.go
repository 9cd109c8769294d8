package filepool

// Stats are the in-memory per-key access counters. A hit run starts at 0
// on the first hit after a miss; every miss increments Misses and restarts
// the run. Counters reset on Clear and are never persisted.
type Stats struct {
	Hits   map[string]uint64
	Misses map[string]uint64
}

func (p *pool[V]) Stats() Stats {
	s := Stats{
		Hits:   make(map[string]uint64, len(p.hits)),
		Misses: make(map[string]uint64, len(p.misses)),
	}
	for k, v := range p.hits {
		s.Hits[k] = v
	}
	for k, v := range p.misses {
		s.Misses[k] = v
	}
	return s
}
