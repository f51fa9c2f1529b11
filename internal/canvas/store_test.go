package canvas

import (
	"strings"
	"sync"
	"testing"

	"kamicanvas/internal/kami"
	"kamicanvas/internal/tester"
)

func assertFixedSections(t *testing.T, s *Store) {
	t.Helper()
	got := s.Sections()
	want := kami.DefaultSections()
	tester.Eq(t, len(got), len(want))
	for i := range want {
		tester.Eq(t, got[i].ID, want[i].ID)
		tester.Eq(t, got[i].Key, want[i].Key)
		tester.Eq(t, got[i].Title, want[i].Title)
		tester.Eq(t, got[i].Description, want[i].Description)
		tester.Eq(t, got[i].Color, want[i].Color)
	}
}

func TestUpdateContentOnlyTouchesTarget(t *testing.T) {
	s := NewStore(false)
	edits := []struct {
		id   kami.SectionID
		text string
	}{
		{"k", "core goal"},
		{"a", "context text"},
		{"k", ""},
		{"i", "commit\n\nwith blank lines"},
		{"m", "   "},
	}
	for _, e := range edits {
		tester.NoErr(t, s.UpdateContent(e.id, e.text))
		assertFixedSections(t, s)
	}
	got := s.Sections()
	tester.Eq(t, got[0].Content, "")
	tester.Eq(t, got[1].Content, "context text")
	tester.Eq(t, got[2].Content, "   ")
	tester.Eq(t, got[3].Content, "commit\n\nwith blank lines")
}

func TestUpdateContentUnknownSection(t *testing.T) {
	s := NewStore(false)
	tester.ErrIs(t, s.UpdateContent("z", "x"), ErrUnknownSection)
	tester.ErrIs(t, s.SetSectionLoading("z", true), ErrUnknownSection)
	_, err := s.Section("z")
	tester.ErrIs(t, err, ErrUnknownSection)
	tester.Eq(t, s.Sections(), kami.DefaultSections())
}

func TestInitializeIdempotent(t *testing.T) {
	s := NewStore(false)
	tester.NoErr(t, s.UpdateContent("m", "model"))
	tester.NoErr(t, s.SetSectionLoading("m", true))
	s.SetAnalysis(&kami.AnalysisResult{Score: 10})

	s.Initialize()
	once := s.Snapshot()
	s.Initialize()
	twice := s.Snapshot()

	tester.Eq(t, once, twice)
	tester.Eq(t, once.Sections, kami.DefaultSections())
	tester.True(t, once.Analysis == nil, "analysis cleared")
}

func TestSectionLoadingCounts(t *testing.T) {
	s := NewStore(false)
	tester.NoErr(t, s.SetSectionLoading("a", true))
	tester.NoErr(t, s.SetSectionLoading("a", true))
	sec, _ := s.Section("a")
	tester.True(t, sec.IsLoading, "loading while outstanding")

	tester.NoErr(t, s.SetSectionLoading("a", false))
	sec, _ = s.Section("a")
	tester.True(t, sec.IsLoading, "still one outstanding")

	tester.NoErr(t, s.SetSectionLoading("a", false))
	tester.NoErr(t, s.SetSectionLoading("a", false))
	sec, _ = s.Section("a")
	tester.False(t, sec.IsLoading, "released")

	other, _ := s.Section("k")
	tester.False(t, other.IsLoading, "other sections untouched")
}

func TestSectionRequestReleaseIgnoresEarlierGeneration(t *testing.T) {
	s := NewStore(false)
	releaseA, err := s.BeginSectionRequest("i")
	tester.NoErr(t, err)

	s.Initialize()
	sec, _ := s.Section("i")
	tester.False(t, sec.IsLoading, "reset by initialize")

	releaseB, err := s.BeginSectionRequest("i")
	tester.NoErr(t, err)

	releaseA()
	sec, _ = s.Section("i")
	tester.True(t, sec.IsLoading, "stale release leaves later request loading")

	releaseB()
	releaseB()
	sec, _ = s.Section("i")
	tester.False(t, sec.IsLoading, "released")

	_, err = s.BeginSectionRequest("z")
	tester.ErrIs(t, err, ErrUnknownSection)
}

func TestModifyContentIsAtomic(t *testing.T) {
	s := NewStore(false)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.ModifyContent("m", func(cur string) string { return cur + "x" })
		}()
	}
	wg.Wait()

	sec, _ := s.Section("m")
	tester.Eq(t, sec.Content, strings.Repeat("x", 100))
	tester.ErrIs(t, s.ModifyContent("z", strings.ToUpper), ErrUnknownSection)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewStore(true)
	s.SetAnalysis(&kami.AnalysisResult{Score: 1, Strengths: []string{"x"}})
	snap := s.Snapshot()
	snap.Sections[0].Content = "mutated"
	snap.Analysis.Strengths[0] = "mutated"

	tester.Eq(t, s.Sections()[0].Content, "")
	tester.Eq(t, s.Analysis().Strengths[0], "x")
	tester.True(t, snap.CredentialsMissing, "credentials flag carried")
}

func TestAnalysisFlags(t *testing.T) {
	s := NewStore(false)
	s.SetAnalysisOpen(true)
	s.SetAnalysisLoading(true)
	snap := s.Snapshot()
	tester.True(t, snap.AnalysisOpen && snap.AnalysisLoading, "flags set")
	s.SetAnalysis(nil)
	tester.True(t, s.Analysis() == nil, "nil analysis")
}

func TestSubscribeCoalesces(t *testing.T) {
	s := NewStore(false)
	ch, cancel := s.Subscribe()
	tester.NoErr(t, s.UpdateContent("k", "1"))
	tester.NoErr(t, s.UpdateContent("k", "2"))

	select {
	case <-ch:
	default:
		t.Fatalf("expected a change signal")
	}
	select {
	case <-ch:
		t.Fatalf("signals should coalesce")
	default:
	}

	cancel()
	cancel()
	tester.NoErr(t, s.UpdateContent("k", "3"))
	select {
	case <-ch:
		t.Fatalf("cancelled subscription should not be signalled")
	default:
	}
}
