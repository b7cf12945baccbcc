package domain

import "strings"

// Program is an installable software title.
type Program struct {
	Ordered

	Name       string
	WikiEn     string
	WikiCz     string
	MediaCount int
	Format     string
	Crack      bool
	SerialKey  bool
	OtherData  string
	Note       string
}

func (p *Program) Clone() *Program {
	c := *p
	return &c
}

func (p *Program) Validate() error {
	var v ValidationErrors
	p.Name = checkName(&v, "name", p.Name)
	checkPositive(&v, "media_count", p.MediaCount)
	p.Format = checkName(&v, "format", p.Format)
	p.OtherData = strings.TrimSpace(p.OtherData)
	p.Note = strings.TrimSpace(p.Note)
	return v.Err()
}
