package domain

// Genre labels movies and shows.
type Genre struct {
	Ordered

	Name string
}

func (g *Genre) Clone() *Genre {
	c := *g
	return &c
}

func (g *Genre) Validate() error {
	var v ValidationErrors
	g.Name = checkName(&v, "name", g.Name)
	return v.Err()
}
