package kami

import (
	"testing"

	"kamicanvas/internal/tester"
)

func TestDefaultSectionsFixedOrder(t *testing.T) {
	secs := DefaultSections()
	tester.Eq(t, len(secs), 4)
	tester.Eq(t, SectionIDs(), []SectionID{"k", "a", "m", "i"})
	keys := []string{}
	for _, s := range secs {
		keys = append(keys, s.Key)
		tester.Eq(t, s.Content, "")
		tester.False(t, s.IsLoading, "fresh section not loading")
	}
	tester.Eq(t, keys, []string{"K", "A", "M", "I"})
	tester.Eq(t, secs[1].Title, "Ambil Konteks Nyata")
}

func TestDefaultSectionsReturnsCopy(t *testing.T) {
	a := DefaultSections()
	a[0].Content = "changed"
	b := DefaultSections()
	tester.Eq(t, b[0].Content, "")
}

func TestSectionIDValid(t *testing.T) {
	tester.True(t, SectionModelkan.Valid(), "m is valid")
	tester.False(t, SectionID("x").Valid(), "x is not valid")
	tester.Eq(t, IndexOf(SectionIkat), 3)
	tester.Eq(t, IndexOf("K"), -1)
}
