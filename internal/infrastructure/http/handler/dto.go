package handler

import (
	"time"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/ordering"
	"github.com/rezkam/catalog/internal/ptr"
)

// Meta carries the ordered-record fields shared by every resource.
// ID, CreatedAt and UpdatedAt are ignored on input. Position is only read by
// update, where it places the record explicitly.
type Meta struct {
	ID        string     `json:"id,omitempty"`
	OwnerID   string     `json:"owner_id,omitempty"`
	Position  *int       `json:"position,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func metaFrom(o *domain.Ordered) Meta {
	return Meta{
		ID:        o.ID,
		OwnerID:   o.OwnerID,
		Position:  ptr.To(o.Position),
		CreatedAt: ptrTime(o.CreatedAt),
		UpdatedAt: ptrTime(o.UpdatedAt),
	}
}

func (m Meta) ordered() domain.Ordered {
	return domain.Ordered{OwnerID: m.OwnerID}
}

func (m Meta) position() *int {
	return m.Position
}

func ptrTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ListResponse wraps collection results.
type ListResponse[D any] struct {
	Items []D `json:"items"`
}

type MovieDTO struct {
	Meta
	CzechName    string   `json:"czech_name"`
	OriginalName string   `json:"original_name"`
	Year         int      `json:"year"`
	Languages    []string `json:"languages,omitempty"`
	Subtitles    []string `json:"subtitles,omitempty"`
	Media        []int    `json:"media,omitempty"`
	CsfdID       int      `json:"csfd_id,omitempty"`
	ImdbCode     string   `json:"imdb_code,omitempty"`
	WikiEn       string   `json:"wiki_en,omitempty"`
	WikiCz       string   `json:"wiki_cz,omitempty"`
	PictureID    string   `json:"picture_id,omitempty"`
	Note         string   `json:"note,omitempty"`
	GenreIDs     []string `json:"genre_ids,omitempty"`
}

func movieToDTO(m *domain.Movie) MovieDTO {
	return MovieDTO{
		Meta:         metaFrom(&m.Ordered),
		CzechName:    m.CzechName,
		OriginalName: m.OriginalName,
		Year:         m.Year,
		Languages:    m.Languages,
		Subtitles:    m.Subtitles,
		Media:        m.Media,
		CsfdID:       m.CsfdID,
		ImdbCode:     m.ImdbCode,
		WikiEn:       m.WikiEn,
		WikiCz:       m.WikiCz,
		PictureID:    m.PictureID,
		Note:         m.Note,
		GenreIDs:     m.GenreIDs,
	}
}

func movieFromDTO(d *MovieDTO) *domain.Movie {
	return &domain.Movie{
		Ordered:      d.ordered(),
		CzechName:    d.CzechName,
		OriginalName: d.OriginalName,
		Year:         d.Year,
		Languages:    d.Languages,
		Subtitles:    d.Subtitles,
		Media:        d.Media,
		CsfdID:       d.CsfdID,
		ImdbCode:     d.ImdbCode,
		WikiEn:       d.WikiEn,
		WikiCz:       d.WikiCz,
		PictureID:    d.PictureID,
		Note:         d.Note,
		GenreIDs:     d.GenreIDs,
	}
}

type ShowDTO struct {
	Meta
	CzechName    string   `json:"czech_name"`
	OriginalName string   `json:"original_name"`
	CsfdID       int      `json:"csfd_id,omitempty"`
	ImdbCode     string   `json:"imdb_code,omitempty"`
	WikiEn       string   `json:"wiki_en,omitempty"`
	WikiCz       string   `json:"wiki_cz,omitempty"`
	PictureID    string   `json:"picture_id,omitempty"`
	Note         string   `json:"note,omitempty"`
	GenreIDs     []string `json:"genre_ids,omitempty"`
}

func showToDTO(s *domain.Show) ShowDTO {
	return ShowDTO{
		Meta:         metaFrom(&s.Ordered),
		CzechName:    s.CzechName,
		OriginalName: s.OriginalName,
		CsfdID:       s.CsfdID,
		ImdbCode:     s.ImdbCode,
		WikiEn:       s.WikiEn,
		WikiCz:       s.WikiCz,
		PictureID:    s.PictureID,
		Note:         s.Note,
		GenreIDs:     s.GenreIDs,
	}
}

func showFromDTO(d *ShowDTO) *domain.Show {
	return &domain.Show{
		Ordered:      d.ordered(),
		CzechName:    d.CzechName,
		OriginalName: d.OriginalName,
		CsfdID:       d.CsfdID,
		ImdbCode:     d.ImdbCode,
		WikiEn:       d.WikiEn,
		WikiCz:       d.WikiCz,
		PictureID:    d.PictureID,
		Note:         d.Note,
		GenreIDs:     d.GenreIDs,
	}
}

type SeasonDTO struct {
	Meta
	ShowID    string   `json:"show_id"`
	Number    int      `json:"number"`
	StartYear int      `json:"start_year"`
	EndYear   int      `json:"end_year"`
	Language  string   `json:"language"`
	Subtitles []string `json:"subtitles,omitempty"`
	Note      string   `json:"note,omitempty"`
}

func seasonToDTO(s *domain.Season) SeasonDTO {
	return SeasonDTO{
		Meta:      metaFrom(&s.Ordered),
		ShowID:    s.ShowID,
		Number:    s.Number,
		StartYear: s.StartYear,
		EndYear:   s.EndYear,
		Language:  s.Language,
		Subtitles: s.Subtitles,
		Note:      s.Note,
	}
}

func seasonFromDTO(d *SeasonDTO) *domain.Season {
	return &domain.Season{
		Ordered:   d.ordered(),
		ShowID:    d.ShowID,
		Number:    d.Number,
		StartYear: d.StartYear,
		EndYear:   d.EndYear,
		Language:  d.Language,
		Subtitles: d.Subtitles,
		Note:      d.Note,
	}
}

type EpisodeDTO struct {
	Meta
	SeasonID string `json:"season_id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Note     string `json:"note,omitempty"`
}

func episodeToDTO(e *domain.Episode) EpisodeDTO {
	return EpisodeDTO{
		Meta:     metaFrom(&e.Ordered),
		SeasonID: e.SeasonID,
		Number:   e.Number,
		Name:     e.Name,
		Length:   e.Length,
		Note:     e.Note,
	}
}

func episodeFromDTO(d *EpisodeDTO) *domain.Episode {
	return &domain.Episode{
		Ordered:  d.ordered(),
		SeasonID: d.SeasonID,
		Number:   d.Number,
		Name:     d.Name,
		Length:   d.Length,
		Note:     d.Note,
	}
}

type GameDTO struct {
	Meta
	Name        string `json:"name"`
	WikiEn      string `json:"wiki_en,omitempty"`
	WikiCz      string `json:"wiki_cz,omitempty"`
	MediaCount  int    `json:"media_count"`
	Format      string `json:"format"`
	Crack       bool   `json:"crack"`
	SerialKey   bool   `json:"serial_key"`
	Patch       bool   `json:"patch"`
	Trainer     bool   `json:"trainer"`
	TrainerData bool   `json:"trainer_data"`
	Editor      bool   `json:"editor"`
	Saves       bool   `json:"saves"`
	OtherData   string `json:"other_data,omitempty"`
	Note        string `json:"note,omitempty"`
}

func gameToDTO(g *domain.Game) GameDTO {
	return GameDTO{
		Meta:        metaFrom(&g.Ordered),
		Name:        g.Name,
		WikiEn:      g.WikiEn,
		WikiCz:      g.WikiCz,
		MediaCount:  g.MediaCount,
		Format:      g.Format,
		Crack:       g.Crack,
		SerialKey:   g.SerialKey,
		Patch:       g.Patch,
		Trainer:     g.Trainer,
		TrainerData: g.TrainerData,
		Editor:      g.Editor,
		Saves:       g.Saves,
		OtherData:   g.OtherData,
		Note:        g.Note,
	}
}

func gameFromDTO(d *GameDTO) *domain.Game {
	return &domain.Game{
		Ordered:     d.ordered(),
		Name:        d.Name,
		WikiEn:      d.WikiEn,
		WikiCz:      d.WikiCz,
		MediaCount:  d.MediaCount,
		Format:      d.Format,
		Crack:       d.Crack,
		SerialKey:   d.SerialKey,
		Patch:       d.Patch,
		Trainer:     d.Trainer,
		TrainerData: d.TrainerData,
		Editor:      d.Editor,
		Saves:       d.Saves,
		OtherData:   d.OtherData,
		Note:        d.Note,
	}
}

type CheatLineDTO struct {
	Action      string `json:"action"`
	Description string `json:"description"`
}

type CheatDTO struct {
	ID           string         `json:"id,omitempty"`
	GameID       string         `json:"game_id,omitempty"`
	GameSetting  string         `json:"game_setting,omitempty"`
	CheatSetting string         `json:"cheat_setting,omitempty"`
	Data         []CheatLineDTO `json:"data"`
}

func cheatToDTO(c *domain.Cheat) CheatDTO {
	out := CheatDTO{
		ID:           c.ID,
		GameID:       c.GameID,
		GameSetting:  c.GameSetting,
		CheatSetting: c.CheatSetting,
		Data:         make([]CheatLineDTO, len(c.Data)),
	}
	for i, l := range c.Data {
		out.Data[i] = CheatLineDTO{Action: l.Action, Description: l.Description}
	}
	return out
}

func cheatFromDTO(d *CheatDTO) *domain.Cheat {
	c := &domain.Cheat{
		GameSetting:  d.GameSetting,
		CheatSetting: d.CheatSetting,
	}
	for _, l := range d.Data {
		c.Data = append(c.Data, domain.CheatData{Action: l.Action, Description: l.Description})
	}
	return c
}

type MusicDTO struct {
	Meta
	Name       string `json:"name"`
	WikiEn     string `json:"wiki_en,omitempty"`
	WikiCz     string `json:"wiki_cz,omitempty"`
	MediaCount int    `json:"media_count"`
	Note       string `json:"note,omitempty"`
}

func musicToDTO(m *domain.Music) MusicDTO {
	return MusicDTO{
		Meta:       metaFrom(&m.Ordered),
		Name:       m.Name,
		WikiEn:     m.WikiEn,
		WikiCz:     m.WikiCz,
		MediaCount: m.MediaCount,
		Note:       m.Note,
	}
}

func musicFromDTO(d *MusicDTO) *domain.Music {
	return &domain.Music{
		Ordered:    d.ordered(),
		Name:       d.Name,
		WikiEn:     d.WikiEn,
		WikiCz:     d.WikiCz,
		MediaCount: d.MediaCount,
		Note:       d.Note,
	}
}

type SongDTO struct {
	Meta
	MusicID string `json:"music_id"`
	Name    string `json:"name"`
	Length  int    `json:"length"`
	Note    string `json:"note,omitempty"`
}

func songToDTO(s *domain.Song) SongDTO {
	return SongDTO{
		Meta:    metaFrom(&s.Ordered),
		MusicID: s.MusicID,
		Name:    s.Name,
		Length:  s.Length,
		Note:    s.Note,
	}
}

func songFromDTO(d *SongDTO) *domain.Song {
	return &domain.Song{
		Ordered: d.ordered(),
		MusicID: d.MusicID,
		Name:    d.Name,
		Length:  d.Length,
		Note:    d.Note,
	}
}

type ProgramDTO struct {
	Meta
	Name       string `json:"name"`
	WikiEn     string `json:"wiki_en,omitempty"`
	WikiCz     string `json:"wiki_cz,omitempty"`
	MediaCount int    `json:"media_count"`
	Format     string `json:"format"`
	Crack      bool   `json:"crack"`
	SerialKey  bool   `json:"serial_key"`
	OtherData  string `json:"other_data,omitempty"`
	Note       string `json:"note,omitempty"`
}

func programToDTO(p *domain.Program) ProgramDTO {
	return ProgramDTO{
		Meta:       metaFrom(&p.Ordered),
		Name:       p.Name,
		WikiEn:     p.WikiEn,
		WikiCz:     p.WikiCz,
		MediaCount: p.MediaCount,
		Format:     p.Format,
		Crack:      p.Crack,
		SerialKey:  p.SerialKey,
		OtherData:  p.OtherData,
		Note:       p.Note,
	}
}

func programFromDTO(d *ProgramDTO) *domain.Program {
	return &domain.Program{
		Ordered:    d.ordered(),
		Name:       d.Name,
		WikiEn:     d.WikiEn,
		WikiCz:     d.WikiCz,
		MediaCount: d.MediaCount,
		Format:     d.Format,
		Crack:      d.Crack,
		SerialKey:  d.SerialKey,
		OtherData:  d.OtherData,
		Note:       d.Note,
	}
}

// PictureDTO describes picture metadata. ContentType and Size are set by
// uploading content and ignored on input.
type PictureDTO struct {
	Meta
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

func pictureToDTO(p *domain.Picture) PictureDTO {
	return PictureDTO{
		Meta:        metaFrom(&p.Ordered),
		Name:        p.Name,
		ContentType: p.ContentType,
		Size:        p.Size,
	}
}

func pictureFromDTO(d *PictureDTO) *domain.Picture {
	return &domain.Picture{
		Ordered: d.ordered(),
		Name:    d.Name,
	}
}

type GenreDTO struct {
	Meta
	Name string `json:"name"`
}

func genreToDTO(g *domain.Genre) GenreDTO {
	return GenreDTO{Meta: metaFrom(&g.Ordered), Name: g.Name}
}

func genreFromDTO(d *GenreDTO) *domain.Genre {
	return &domain.Genre{Ordered: d.ordered(), Name: d.Name}
}

type StatsDTO struct {
	Count  int `json:"count"`
	Media  int `json:"media"`
	Length int `json:"length"`
}

func statsToDTO(s catalog.Stats) StatsDTO {
	return StatsDTO{Count: s.Count, Media: s.Media, Length: s.Length}
}

type SetReportDTO struct {
	OwnerID  string   `json:"owner_id,omitempty"`
	ParentID string   `json:"parent_id,omitempty"`
	Size     int      `json:"size"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func reportsToDTO(reports []ordering.SetReport) []SetReportDTO {
	out := make([]SetReportDTO, len(reports))
	for i, r := range reports {
		out[i] = SetReportDTO{
			OwnerID:  r.Key.OwnerID,
			ParentID: r.Key.ParentID,
			Size:     r.Size,
			Errors:   r.Errors,
			Warnings: r.Warnings,
		}
	}
	return out
}
