package domain

import "strings"

// Music is an album. Its songs form one sibling set per album.
type Music struct {
	Ordered

	Name       string
	WikiEn     string
	WikiCz     string
	MediaCount int
	Note       string
}

func (m *Music) Clone() *Music {
	c := *m
	return &c
}

func (m *Music) Validate() error {
	var v ValidationErrors
	m.Name = checkName(&v, "name", m.Name)
	checkPositive(&v, "media_count", m.MediaCount)
	m.Note = strings.TrimSpace(m.Note)
	return v.Err()
}

// Song belongs to a Music album.
type Song struct {
	Ordered

	MusicID string
	Name    string
	Length  int // seconds
	Note    string
}

func (s *Song) GetParentID() string   { return s.MusicID }
func (s *Song) SetParentID(id string) { s.MusicID = id }

func (s *Song) Clone() *Song {
	c := *s
	return &c
}

func (s *Song) Validate() error {
	var v ValidationErrors
	s.Name = checkName(&v, "name", s.Name)
	checkNonNegative(&v, "length", s.Length)
	s.Note = strings.TrimSpace(s.Note)
	return v.Err()
}
