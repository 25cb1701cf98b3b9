package writer

import "sync"

// Session tracks which artifacts were written during one generation run.
// Create one per run; it is safe for concurrent use.
//
// Ids are class identifiers qualified by kind (see ArtifactID): pages and
// components are written to different directories, so a page and a
// component may share a class name without colliding.
type Session struct {
	mu      sync.Mutex
	written map[string]struct{}
	order   []string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{written: make(map[string]struct{})}
}

// Claim marks id as written and reports whether the caller is the first to
// claim it. Only the first claimant may write the artifact.
func (s *Session) Claim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.written[id]; ok {
		return false
	}
	s.written[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Written returns the claimed ids in claim order.
func (s *Session) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// paths collects artifact paths from concurrent writers.
type paths struct {
	mu   sync.Mutex
	list []string
}

func (p *paths) add(path ...string) {
	p.mu.Lock()
	p.list = append(p.list, path...)
	p.mu.Unlock()
}

func (p *paths) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.list...)
}
