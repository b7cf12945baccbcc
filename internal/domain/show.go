package domain

import "strings"

// Show is a TV show. Its seasons form a sibling set per show, and each
// season's episodes form a sibling set per season.
type Show struct {
	Ordered

	CzechName    string
	OriginalName string
	CsfdID       int
	ImdbCode     string
	WikiEn       string
	WikiCz       string
	PictureID    string
	Note         string
	GenreIDs     []string
}

func (s *Show) Clone() *Show {
	c := *s
	c.GenreIDs = cloneStrings(s.GenreIDs)
	return &c
}

func (s *Show) Validate() error {
	var v ValidationErrors
	s.CzechName = checkName(&v, "czech_name", s.CzechName)
	s.OriginalName = checkName(&v, "original_name", s.OriginalName)
	checkNonNegative(&v, "csfd_id", s.CsfdID)
	checkImdbCode(&v, s.ImdbCode)
	checkNoBlanks(&v, "genre_ids", s.GenreIDs)
	s.Note = strings.TrimSpace(s.Note)
	return v.Err()
}

// Season belongs to a Show.
type Season struct {
	Ordered

	ShowID    string
	Number    int
	StartYear int
	EndYear   int
	Language  string
	Subtitles []string
	Note      string
}

func (s *Season) GetParentID() string   { return s.ShowID }
func (s *Season) SetParentID(id string) { s.ShowID = id }

func (s *Season) Clone() *Season {
	c := *s
	c.Subtitles = cloneStrings(s.Subtitles)
	return &c
}

func (s *Season) Validate() error {
	var v ValidationErrors
	checkPositive(&v, "number", s.Number)
	checkYear(&v, "start_year", s.StartYear)
	checkYear(&v, "end_year", s.EndYear)
	if s.StartYear > s.EndYear {
		v.Add("end_year", "must not be before start_year")
	}
	s.Language = checkName(&v, "language", s.Language)
	checkNoBlanks(&v, "subtitles", s.Subtitles)
	s.Note = strings.TrimSpace(s.Note)
	return v.Err()
}

// Episode belongs to a Season.
type Episode struct {
	Ordered

	SeasonID string
	Number   int
	Name     string
	Length   int // minutes
	Note     string
}

func (e *Episode) GetParentID() string   { return e.SeasonID }
func (e *Episode) SetParentID(id string) { e.SeasonID = id }

func (e *Episode) Clone() *Episode {
	c := *e
	return &c
}

func (e *Episode) Validate() error {
	var v ValidationErrors
	checkPositive(&v, "number", e.Number)
	e.Name = checkName(&v, "name", e.Name)
	checkNonNegative(&v, "length", e.Length)
	e.Note = strings.TrimSpace(e.Note)
	return v.Err()
}
