package domain

import "strings"

// Movie is a single film in the catalog.
type Movie struct {
	Ordered

	CzechName    string
	OriginalName string
	Year         int
	Languages    []string
	Subtitles    []string
	Media        []int // length of each medium in minutes
	CsfdID       int
	ImdbCode     string
	WikiEn       string
	WikiCz       string
	PictureID    string
	Note         string
	GenreIDs     []string
}

// Clone returns a deep copy of the movie.
func (m *Movie) Clone() *Movie {
	c := *m
	c.Languages = cloneStrings(m.Languages)
	c.Subtitles = cloneStrings(m.Subtitles)
	c.Media = cloneInts(m.Media)
	c.GenreIDs = cloneStrings(m.GenreIDs)
	return &c
}

// Validate checks field constraints and normalizes names.
func (m *Movie) Validate() error {
	var v ValidationErrors
	m.CzechName = checkName(&v, "czech_name", m.CzechName)
	m.OriginalName = checkName(&v, "original_name", m.OriginalName)
	checkYear(&v, "year", m.Year)
	if len(m.Languages) == 0 {
		v.Add("languages", "at least one language is required")
	}
	checkNoBlanks(&v, "languages", m.Languages)
	checkNoBlanks(&v, "subtitles", m.Subtitles)
	if len(m.Media) == 0 {
		v.Add("media", "at least one medium is required")
	}
	for _, length := range m.Media {
		if length <= 0 {
			v.Add("media", "medium length must be positive")
			break
		}
	}
	checkNonNegative(&v, "csfd_id", m.CsfdID)
	checkImdbCode(&v, m.ImdbCode)
	checkNoBlanks(&v, "genre_ids", m.GenreIDs)
	m.Note = strings.TrimSpace(m.Note)
	return v.Err()
}

// MediaCount is the number of media the movie spans.
func (m *Movie) MediaCount() int {
	return len(m.Media)
}

// Length is the total running time in minutes.
func (m *Movie) Length() int {
	total := 0
	for _, l := range m.Media {
		total += l
	}
	return total
}
