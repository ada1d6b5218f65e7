package state

import "fmt"

// SelectionPolicy decides whether a selected cut can be deselected again.
type SelectionPolicy string

const (
	PolicyAppendOnly SelectionPolicy = "append-only"
	PolicyToggle     SelectionPolicy = "toggle"
)

func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch SelectionPolicy(s) {
	case PolicyAppendOnly, PolicyToggle:
		return SelectionPolicy(s), nil
	case "":
		return PolicyAppendOnly, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

type ToggleResult int

const (
	ToggleIgnored ToggleResult = iota
	ToggleAdded
	ToggleRemoved
)

// Sequence is the ordered, duplicate-free list of selected cuts. It seals
// once Limit cuts are chosen or when generation is forced; a sealed sequence
// ignores every further change.
type Sequence struct {
	Limit  int
	Policy SelectionPolicy

	// OnComplete runs synchronously, exactly once, when the sequence seals.
	OnComplete func(entries []Entry)

	entries []Entry
	sealed  bool
}

func NewSequence(limit int, policy SelectionPolicy) *Sequence {
	return &Sequence{Limit: limit, Policy: policy}
}

func (s *Sequence) Sealed() bool { return s.sealed }
func (s *Sequence) Len() int     { return len(s.entries) }

// Entries returns a copy of the selection in order.
func (s *Sequence) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Sequence) Descriptions() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Description
	}
	return out
}

// Rank returns the 1-based order of the cut in the selection.
func (s *Sequence) Rank(cutID string) (int, bool) {
	for i, e := range s.entries {
		if e.CutID == cutID {
			return i + 1, true
		}
	}
	return 0, false
}

// Toggle selects or, under PolicyToggle, deselects a cut.
func (s *Sequence) Toggle(c Cut) ToggleResult {
	if s.sealed {
		return ToggleIgnored
	}
	if rank, ok := s.Rank(c.ID); ok {
		if s.Policy != PolicyToggle {
			return ToggleIgnored
		}
		i := rank - 1
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return ToggleRemoved
	}
	if len(s.entries) >= s.Limit {
		return ToggleIgnored
	}
	s.entries = append(s.entries, entryFor(c))
	if len(s.entries) == s.Limit {
		s.seal()
	}
	return ToggleAdded
}

// ForceGenerate seals the sequence as it stands. An empty selection becomes
// every cut in layout order. Returns false when the sequence was already sealed.
func (s *Sequence) ForceGenerate(all []Cut) bool {
	if s.sealed {
		return false
	}
	if len(s.entries) == 0 {
		for _, c := range all {
			s.entries = append(s.entries, entryFor(c))
		}
	}
	s.seal()
	return true
}

func (s *Sequence) seal() {
	s.sealed = true
	if s.OnComplete != nil {
		s.OnComplete(s.Entries())
	}
}
