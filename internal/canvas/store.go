package canvas

import (
	"errors"
	"fmt"
	"sync"

	"kamicanvas/internal/kami"
)

var ErrUnknownSection = errors.New("canvas: unknown section")

// Snapshot is an immutable copy of a canvas session for rendering.
type Snapshot struct {
	Sections           []kami.Section       `json:"sections"`
	Analysis           *kami.AnalysisResult `json:"analysis"`
	AnalysisLoading    bool                 `json:"analysisLoading"`
	AnalysisOpen       bool                 `json:"analysisOpen"`
	CredentialsMissing bool                 `json:"credentialsMissing"`
}

// Section returns the snapshot copy of id.
func (s Snapshot) Section(id kami.SectionID) (kami.Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return kami.Section{}, false
}

// Store owns the state of one canvas. Every method is a single atomic
// transition; readers only ever see whole states through Snapshot.
type Store struct {
	mu sync.RWMutex

	sections           []kami.Section
	inflight           []int
	generation         uint64
	analysis           *kami.AnalysisResult
	analysisLoading    bool
	analysisOpen       bool
	credentialsMissing bool

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan struct{}
}

func NewStore(credentialsMissing bool) *Store {
	s := &Store{
		credentialsMissing: credentialsMissing,
		subs:               make(map[int]chan struct{}),
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.sections = kami.DefaultSections()
	s.inflight = make([]int, len(s.sections))
	s.analysis = nil
}

// Initialize restores the four default sections, not loading, and drops
// any analysis. Requests begun before the reset release nothing when they
// complete.
func (s *Store) Initialize() {
	s.mu.Lock()
	s.reset()
	s.generation++
	s.mu.Unlock()
	s.notify()
}

// UpdateContent replaces the content of id verbatim.
func (s *Store) UpdateContent(id kami.SectionID, content string) error {
	idx := kami.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.Lock()
	s.sections[idx].Content = content
	s.mu.Unlock()
	s.notify()
	return nil
}

// ModifyContent replaces the content of id with fn(current) in one step,
// so concurrent writers cannot lose each other's updates.
func (s *Store) ModifyContent(id kami.SectionID, fn func(current string) string) error {
	idx := kami.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.Lock()
	s.sections[idx].Content = fn(s.sections[idx].Content)
	s.mu.Unlock()
	s.notify()
	return nil
}

// BeginSectionRequest marks id as loading for one outstanding request and
// returns its release. Release is idempotent, and a release issued after
// Initialize for a request begun before it does nothing.
func (s *Store) BeginSectionRequest(id kami.SectionID) (func(), error) {
	idx := kami.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.Lock()
	gen := s.generation
	s.inflight[idx]++
	s.sections[idx].IsLoading = true
	s.mu.Unlock()
	s.notify()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if gen != s.generation {
				s.mu.Unlock()
				return
			}
			if s.inflight[idx] > 0 {
				s.inflight[idx]--
			}
			s.sections[idx].IsLoading = s.inflight[idx] > 0
			s.mu.Unlock()
			s.notify()
		})
	}, nil
}

// SetSectionLoading brackets an outstanding suggestion request for id.
// Requests are counted, so the flag stays set until the last outstanding
// request for the section clears it.
func (s *Store) SetSectionLoading(id kami.SectionID, loading bool) error {
	idx := kami.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.Lock()
	if loading {
		s.inflight[idx]++
	} else if s.inflight[idx] > 0 {
		s.inflight[idx]--
	}
	s.sections[idx].IsLoading = s.inflight[idx] > 0
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetAnalysis stores result, or clears the analysis when result is nil.
func (s *Store) SetAnalysis(result *kami.AnalysisResult) {
	s.mu.Lock()
	s.analysis = result.Clone()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetAnalysisLoading(loading bool) {
	s.mu.Lock()
	s.analysisLoading = loading
	s.mu.Unlock()
	s.notify()
}

// SetAnalysisOpen toggles the analysis view.
func (s *Store) SetAnalysisOpen(open bool) {
	s.mu.Lock()
	s.analysisOpen = open
	s.mu.Unlock()
	s.notify()
}

func (s *Store) CredentialsMissing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentialsMissing
}

// Sections returns a copy of the sections in canvas order.
func (s *Store) Sections() []kami.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]kami.Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Section returns a copy of id.
func (s *Store) Section(id kami.SectionID) (kami.Section, error) {
	idx := kami.IndexOf(id)
	if idx < 0 {
		return kami.Section{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections[idx], nil
}

func (s *Store) Analysis() *kami.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis.Clone()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sections := make([]kami.Section, len(s.sections))
	copy(sections, s.sections)
	return Snapshot{
		Sections:           sections,
		Analysis:           s.analysis.Clone(),
		AnalysisLoading:    s.analysisLoading,
		AnalysisOpen:       s.analysisOpen,
		CredentialsMissing: s.credentialsMissing,
	}
}

// Subscribe returns a channel that receives a signal after every
// transition. Signals coalesce: a slow reader sees one pending signal and
// should read the latest Snapshot. cancel releases the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
