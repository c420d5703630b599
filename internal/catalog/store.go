// Package catalog holds the in-memory paper catalog: class → subject → year →
// resource path. Every level remembers insertion order; listing order rules are
// applied by the accessors.
package catalog

import (
	"sort"
	"sync"
)

// Entry is one downloadable paper. (Class, Subject, Year) is the key.
type Entry struct {
	Class   string `db:"class" yaml:"class"`
	Subject string `db:"subject" yaml:"subject"`
	Year    string `db:"year" yaml:"year"`
	Path    string `db:"path" yaml:"path"`
}

type subjectNode struct {
	years []string
	paths map[string]string
}

type classNode struct {
	subjects  []string
	bySubject map[string]*subjectNode
}

// Store is safe for concurrent use. Writes are visible to every reader
// immediately; there is no delete.
type Store struct {
	mu      sync.RWMutex
	classes []string
	byClass map[string]*classNode
}

// NewStore returns a store holding entries in the given order.
func NewStore(entries ...Entry) *Store {
	s := &Store{byClass: make(map[string]*classNode)}
	s.PutAll(entries)
	return s
}

// Put inserts the entry, creating the class and subject when needed. An
// existing key gets its path overwritten and keeps its position. It reports
// whether a previous path was replaced.
func (s *Store) Put(e Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(e)
}

// PutAll inserts entries in order under a single lock.
func (s *Store) PutAll(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.put(e)
	}
}

func (s *Store) put(e Entry) bool {
	cls, ok := s.byClass[e.Class]
	if !ok {
		cls = &classNode{bySubject: make(map[string]*subjectNode)}
		s.byClass[e.Class] = cls
		s.classes = append(s.classes, e.Class)
	}
	subj, ok := cls.bySubject[e.Subject]
	if !ok {
		subj = &subjectNode{paths: make(map[string]string)}
		cls.bySubject[e.Subject] = subj
		cls.subjects = append(cls.subjects, e.Subject)
	}
	_, replaced := subj.paths[e.Year]
	if !replaced {
		subj.years = append(subj.years, e.Year)
	}
	subj.paths[e.Year] = e.Path
	return replaced
}

// Lookup returns the resource path of a paper.
func (s *Store) Lookup(class, subject, year string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cls, ok := s.byClass[class]
	if !ok {
		return "", false
	}
	subj, ok := cls.bySubject[subject]
	if !ok {
		return "", false
	}
	path, ok := subj.paths[year]
	return path, ok
}

// Classes returns class ids sorted lexicographically.
func (s *Store) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]string(nil), s.classes...)
	sort.Strings(out)
	return out
}

// Subjects returns the subjects of a class in insertion order.
func (s *Store) Subjects(class string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cls, ok := s.byClass[class]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cls.subjects...), true
}

// Years returns the years of a subject, most recent first.
func (s *Store) Years(class, subject string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cls, ok := s.byClass[class]
	if !ok {
		return nil, false
	}
	subj, ok := cls.bySubject[subject]
	if !ok {
		return nil, false
	}
	out := append([]string(nil), subj.years...)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, true
}

// Entries flattens the catalog in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, class := range s.classes {
		cls := s.byClass[class]
		for _, subject := range cls.subjects {
			subj := cls.bySubject[subject]
			for _, year := range subj.years {
				out = append(out, Entry{Class: class, Subject: subject, Year: year, Path: subj.paths[year]})
			}
		}
	}
	return out
}

// Len returns the number of papers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, cls := range s.byClass {
		for _, subj := range cls.bySubject {
			n += len(subj.paths)
		}
	}
	return n
}

// SubjectSummary counts the papers of one subject.
type SubjectSummary struct {
	Subject string
	Years   []string // ascending
}

// ClassSummary groups subject summaries of a class.
type ClassSummary struct {
	Class    string
	Subjects []SubjectSummary
}

// Summary describes the catalog for the admin view: classes sorted, subjects
// in insertion order, years ascending.
func (s *Store) Summary() []ClassSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classes := append([]string(nil), s.classes...)
	sort.Strings(classes)

	out := make([]ClassSummary, 0, len(classes))
	for _, class := range classes {
		cls := s.byClass[class]
		cs := ClassSummary{Class: class}
		for _, subject := range cls.subjects {
			years := append([]string(nil), cls.bySubject[subject].years...)
			sort.Strings(years)
			cs.Subjects = append(cs.Subjects, SubjectSummary{Subject: subject, Years: years})
		}
		out = append(out, cs)
	}
	return out
}
