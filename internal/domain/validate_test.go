package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovie() *Movie {
	return &Movie{
		CzechName:    "  Obecná škola ",
		OriginalName: "Obecná škola",
		Year:         1991,
		Languages:    []string{"cs"},
		Subtitles:    []string{"en"},
		Media:        []int{100},
		CsfdID:       8,
		ImdbCode:     "tt0101783",
		GenreIDs:     []string{"comedy"},
	}
}

func fields(err error) []string {
	var out []string
	for _, fe := range FieldErrors(err) {
		out = append(out, fe.Field)
	}
	return out
}

func TestMovieValidate_Valid(t *testing.T) {
	m := validMovie()

	require.NoError(t, m.Validate())
	assert.Equal(t, "Obecná škola", m.CzechName, "names are trimmed")
}

func TestMovieValidate_CollectsEveryField(t *testing.T) {
	m := &Movie{Year: 1900, ImdbCode: "nm123", Media: []int{0}, CsfdID: -1}

	err := m.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.ElementsMatch(t,
		[]string{"czech_name", "original_name", "year", "languages", "media", "csfd_id", "imdb_code"},
		fields(err))
}

func TestMovieValidate_YearRange(t *testing.T) {
	tests := []struct {
		year  int
		valid bool
	}{
		{1929, false},
		{1930, true},
		{time.Now().UTC().Year(), true},
		{time.Now().UTC().Year() + 1, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.year), func(t *testing.T) {
			m := validMovie()
			m.Year = tt.year
			if tt.valid {
				assert.NoError(t, m.Validate())
			} else {
				assert.Equal(t, []string{"year"}, fields(m.Validate()))
			}
		})
	}
}

func TestMovieValidate_NameTooLong(t *testing.T) {
	m := validMovie()
	m.OriginalName = strings.Repeat("x", 256)

	assert.Equal(t, []string{"original_name"}, fields(m.Validate()))
}

func TestMovieClone_DeepCopiesSlices(t *testing.T) {
	m := validMovie()
	m.ID = "id-1"
	m.Position = 4

	c := m.Clone()
	c.Languages[0] = "en"
	c.Media[0] = 1

	assert.Equal(t, "cs", m.Languages[0])
	assert.Equal(t, 100, m.Media[0])
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, 4, c.Position)
}

func TestMovieLength(t *testing.T) {
	m := &Movie{Media: []int{90, 45}}

	assert.Equal(t, 2, m.MediaCount())
	assert.Equal(t, 135, m.Length())
}

func TestSeasonValidate_YearOrder(t *testing.T) {
	s := &Season{Number: 1, StartYear: 2005, EndYear: 2001, Language: "en"}

	assert.Equal(t, []string{"end_year"}, fields(s.Validate()))
}

func TestSeasonParent(t *testing.T) {
	s := &Season{}
	s.SetParentID("show-1")

	assert.Equal(t, "show-1", s.GetParentID())
	assert.Equal(t, "", (&Show{}).GetParentID())
}

func TestEpisodeValidate(t *testing.T) {
	assert.NoError(t, (&Episode{Number: 1, Name: "Pilot", Length: 0}).Validate())
	assert.ElementsMatch(t, []string{"number", "name", "length"},
		fields((&Episode{Length: -5}).Validate()))
}

func TestCheatValidate(t *testing.T) {
	c := &Cheat{Data: []CheatData{{Action: " God mode ", Description: "iddqd"}}}

	require.NoError(t, c.Validate())
	assert.Equal(t, "God mode", c.Data[0].Action)

	assert.Equal(t, []string{"data"}, fields((&Cheat{}).Validate()))
	assert.Equal(t, []string{"data"}, fields((&Cheat{Data: []CheatData{{Action: "x"}}}).Validate()))
}

func TestCheatClone(t *testing.T) {
	c := &Cheat{GameID: "g", Data: []CheatData{{Action: "a", Description: "b"}}}

	clone := c.Clone()
	clone.Data[0].Action = "changed"

	assert.Equal(t, "a", c.Data[0].Action)
	assert.Equal(t, "g", clone.GetParentID())
}

func TestGameAndProgramValidate(t *testing.T) {
	assert.NoError(t, (&Game{Name: "Doom", MediaCount: 1, Format: "CD"}).Validate())
	assert.ElementsMatch(t, []string{"name", "media_count", "format"}, fields((&Game{}).Validate()))
	assert.ElementsMatch(t, []string{"name", "media_count", "format"}, fields((&Program{}).Validate()))
}

func TestSongAndMusicValidate(t *testing.T) {
	assert.NoError(t, (&Music{Name: "Album", MediaCount: 2}).Validate())
	assert.NoError(t, (&Song{Name: "Track", Length: 215}).Validate())
	assert.Equal(t, []string{"length"}, fields((&Song{Name: "x", Length: -1}).Validate()))
}

func TestPictureValidate(t *testing.T) {
	assert.NoError(t, (&Picture{Name: "cover", ContentType: "image/png", Size: 10}).Validate())
	assert.ElementsMatch(t, []string{"content_type", "size"},
		fields((&Picture{Name: "cover", ContentType: "text/plain", Size: MaxPictureSize + 1}).Validate()))
}

func TestGenreValidate(t *testing.T) {
	assert.Equal(t, []string{"name"}, fields((&Genre{Name: "   "}).Validate()))
}
