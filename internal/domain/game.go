package domain

import "strings"

// Game is a computer game with its installation details.
type Game struct {
	Ordered

	Name        string
	WikiEn      string
	WikiCz      string
	MediaCount  int
	Format      string
	Crack       bool
	SerialKey   bool
	Patch       bool
	Trainer     bool
	TrainerData bool
	Editor      bool
	Saves       bool
	OtherData   string
	Note        string
}

func (g *Game) Clone() *Game {
	c := *g
	return &c
}

func (g *Game) Validate() error {
	var v ValidationErrors
	g.Name = checkName(&v, "name", g.Name)
	checkPositive(&v, "media_count", g.MediaCount)
	g.Format = checkName(&v, "format", g.Format)
	g.OtherData = strings.TrimSpace(g.OtherData)
	g.Note = strings.TrimSpace(g.Note)
	return v.Err()
}

// CheatData is one action line of a cheat.
type CheatData struct {
	Action      string
	Description string
}

// Cheat holds the cheat sheet of a game. A game has at most one cheat.
type Cheat struct {
	Ordered

	GameID       string
	GameSetting  string
	CheatSetting string
	Data         []CheatData
}

func (c *Cheat) GetParentID() string   { return c.GameID }
func (c *Cheat) SetParentID(id string) { c.GameID = id }

func (c *Cheat) Clone() *Cheat {
	out := *c
	if c.Data != nil {
		out.Data = make([]CheatData, len(c.Data))
		copy(out.Data, c.Data)
	}
	return &out
}

func (c *Cheat) Validate() error {
	var v ValidationErrors
	c.GameSetting = strings.TrimSpace(c.GameSetting)
	c.CheatSetting = strings.TrimSpace(c.CheatSetting)
	if len(c.Data) == 0 {
		v.Add("data", "at least one cheat line is required")
	}
	for i := range c.Data {
		c.Data[i].Action = strings.TrimSpace(c.Data[i].Action)
		c.Data[i].Description = strings.TrimSpace(c.Data[i].Description)
		if c.Data[i].Action == "" || c.Data[i].Description == "" {
			v.Add("data", "action and description are required")
			break
		}
	}
	return v.Err()
}
