package sqlstore

import "github.com/rezkam/catalog/internal/domain"

var movieSchema = newSchema("movie", "movies", "",
	[]string{"czech_name", "original_name", "year", "languages", "subtitles", "media",
		"csfd_id", "imdb_code", "wiki_en", "wiki_cz", "picture_id", "note", "genre_ids"},
	func() *domain.Movie { return &domain.Movie{} },
	func(m *domain.Movie) []any {
		return []any{&m.CzechName, &m.OriginalName, &m.Year,
			jsonCol(&m.Languages), jsonCol(&m.Subtitles), jsonCol(&m.Media),
			&m.CsfdID, &m.ImdbCode, &m.WikiEn, &m.WikiCz,
			(*nullString)(&m.PictureID), &m.Note, jsonCol(&m.GenreIDs)}
	})

var showSchema = newSchema("show", "shows", "",
	[]string{"czech_name", "original_name", "csfd_id", "imdb_code", "wiki_en", "wiki_cz",
		"picture_id", "note", "genre_ids"},
	func() *domain.Show { return &domain.Show{} },
	func(s *domain.Show) []any {
		return []any{&s.CzechName, &s.OriginalName, &s.CsfdID, &s.ImdbCode, &s.WikiEn, &s.WikiCz,
			(*nullString)(&s.PictureID), &s.Note, jsonCol(&s.GenreIDs)}
	})

var seasonSchema = newSchema("season", "seasons", "show_id",
	[]string{"show_id", "number", "start_year", "end_year", "language", "subtitles", "note"},
	func() *domain.Season { return &domain.Season{} },
	func(s *domain.Season) []any {
		return []any{&s.ShowID, &s.Number, &s.StartYear, &s.EndYear, &s.Language,
			jsonCol(&s.Subtitles), &s.Note}
	})

var episodeSchema = newSchema("episode", "episodes", "season_id",
	[]string{"season_id", "number", "name", "length", "note"},
	func() *domain.Episode { return &domain.Episode{} },
	func(e *domain.Episode) []any {
		return []any{&e.SeasonID, &e.Number, &e.Name, &e.Length, &e.Note}
	})

var gameSchema = newSchema("game", "games", "",
	[]string{"name", "wiki_en", "wiki_cz", "media_count", "format", "crack", "serial_key",
		"patch", "trainer", "trainer_data", "editor", "saves", "other_data", "note"},
	func() *domain.Game { return &domain.Game{} },
	func(g *domain.Game) []any {
		return []any{&g.Name, &g.WikiEn, &g.WikiCz, &g.MediaCount, &g.Format, &g.Crack, &g.SerialKey,
			&g.Patch, &g.Trainer, &g.TrainerData, &g.Editor, &g.Saves, &g.OtherData, &g.Note}
	})

var cheatSchema = newSchema("cheat", "cheats", "game_id",
	[]string{"game_id", "game_setting", "cheat_setting", "data"},
	func() *domain.Cheat { return &domain.Cheat{} },
	func(c *domain.Cheat) []any {
		return []any{&c.GameID, &c.GameSetting, &c.CheatSetting, jsonCol(&c.Data)}
	})

var musicSchema = newSchema("music", "music", "",
	[]string{"name", "wiki_en", "wiki_cz", "media_count", "note"},
	func() *domain.Music { return &domain.Music{} },
	func(m *domain.Music) []any {
		return []any{&m.Name, &m.WikiEn, &m.WikiCz, &m.MediaCount, &m.Note}
	})

var songSchema = newSchema("song", "songs", "music_id",
	[]string{"music_id", "name", "length", "note"},
	func() *domain.Song { return &domain.Song{} },
	func(s *domain.Song) []any {
		return []any{&s.MusicID, &s.Name, &s.Length, &s.Note}
	})

var programSchema = newSchema("program", "programs", "",
	[]string{"name", "wiki_en", "wiki_cz", "media_count", "format", "crack", "serial_key",
		"other_data", "note"},
	func() *domain.Program { return &domain.Program{} },
	func(p *domain.Program) []any {
		return []any{&p.Name, &p.WikiEn, &p.WikiCz, &p.MediaCount, &p.Format, &p.Crack, &p.SerialKey,
			&p.OtherData, &p.Note}
	})

var pictureSchema = newSchema("picture", "pictures", "",
	[]string{"name", "content_type", "size"},
	func() *domain.Picture { return &domain.Picture{} },
	func(p *domain.Picture) []any {
		return []any{&p.Name, &p.ContentType, &p.Size}
	})

var genreSchema = newSchema("genre", "genres", "",
	[]string{"name"},
	func() *domain.Genre { return &domain.Genre{} },
	func(g *domain.Genre) []any {
		return []any{&g.Name}
	})
