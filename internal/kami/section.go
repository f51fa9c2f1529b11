package kami

// SectionID identifies one of the four fixed canvas stages.
type SectionID string

const (
	SectionKaji     SectionID = "k"
	SectionAmbil    SectionID = "a"
	SectionModelkan SectionID = "m"
	SectionIkat     SectionID = "i"
)

// Section is one editable stage of the framework. Only Content and
// IsLoading change during a session.
type Section struct {
	ID          SectionID `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Color       string    `json:"color"`
	IsLoading   bool      `json:"isLoading"`
}

var defaultSections = [...]Section{
	{
		ID:          SectionKaji,
		Key:         "K",
		Title:       "Kaji Tujuan Inti",
		Description: "Guru dan murid bersama-sama Mendekonstruksi (mengurai) bahasa kurikulum (CP/TP) menjadi ide-ide besar yang sederhana.",
		Color:       "bg-gradient-to-r from-blue-600/20 to-blue-900/20 border-blue-500/30",
	},
	{
		ID:          SectionAmbil,
		Key:         "A",
		Title:       "Ambil Konteks Nyata",
		Description: "Murid secara aktif Menghubungkan ide besar tersebut dengan fakta, masalah, atau data di lingkungan sekitar mereka (Kontekstualisasi).",
		Color:       "bg-gradient-to-r from-purple-600/20 to-purple-900/20 border-purple-500/30",
	},
	{
		ID:          SectionModelkan,
		Key:         "M",
		Title:       "Modelkan",
		Description: "Murid Memvisualisasikan (membuat model, sketsa, analogi, atau peta konsep) sebagai representasi pemahaman awal mereka tentang tujuan tersebut.",
		Color:       "bg-gradient-to-r from-emerald-600/20 to-emerald-900/20 border-emerald-500/30",
	},
	{
		ID:          SectionIkat,
		Key:         "I",
		Title:       "Ikat Komitmen Belajar",
		Description: "Guru dan murid Menyepakati (menetapkan) representasi tersebut sebagai kontrak belajar dan panduan yang akan selalu dirujuk sepanjang proses.",
		Color:       "bg-gradient-to-r from-rose-600/20 to-rose-900/20 border-rose-500/30",
	},
}

// SectionCount is the fixed number of sections on every canvas.
const SectionCount = len(defaultSections)

// DefaultSections returns a fresh copy of the four sections in canvas order,
// with empty content and no outstanding requests.
func DefaultSections() []Section {
	out := make([]Section, len(defaultSections))
	copy(out, defaultSections[:])
	return out
}

// SectionIDs lists the fixed ids in canvas order.
func SectionIDs() []SectionID {
	ids := make([]SectionID, 0, len(defaultSections))
	for _, s := range defaultSections {
		ids = append(ids, s.ID)
	}
	return ids
}

// IndexOf returns the canvas position of id, or -1 when id is not one of
// the fixed sections.
func IndexOf(id SectionID) int {
	for i, s := range defaultSections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Valid reports whether id names one of the fixed sections.
func (id SectionID) Valid() bool { return IndexOf(id) >= 0 }
