package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
	mw "github.com/rezkam/catalog/internal/infrastructure/http/middleware"
)

// NewRouter returns the /v1 routes for every catalog kind. JSON bodies are
// limited to maxBodyBytes; picture uploads to the maximum picture size.
// Callers must put the caller's scope in the request context first.
func NewRouter(svc *catalog.Service, maxBodyBytes int64) http.Handler {
	movies := newResource(svc.Movies, movieToDTO, movieFromDTO)
	shows := newResource(svc.Shows, showToDTO, showFromDTO)
	seasons := newResource(svc.Seasons, seasonToDTO, seasonFromDTO)
	episodes := newResource(svc.Episodes, episodeToDTO, episodeFromDTO)
	games := newResource(svc.Games, gameToDTO, gameFromDTO)
	music := newResource(svc.Music, musicToDTO, musicFromDTO)
	songs := newResource(svc.Songs, songToDTO, songFromDTO)
	programs := newResource(svc.Programs, programToDTO, programFromDTO)
	pictures := newResource(svc.Pictures.Movables, pictureToDTO, pictureFromDTO)
	genres := newResource(svc.Genres, genreToDTO, genreFromDTO)
	cheats := &cheatHandler{svc: svc.Cheats}
	content := &contentHandler{svc: svc.Pictures}

	r := chi.NewRouter()

	r.Route("/v1", func(r chi.Router) {
		r.With(mw.MaxBodyBytes(domain.MaxPictureSize)).Put("/pictures/{id}/content", content.Put)
		r.Get("/pictures/{id}/content", content.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.MaxBodyBytes(maxBodyBytes))

			mountKind(r, "/movies", movies, nil)
			mountKind(r, "/shows", shows, func(r chi.Router) {
				r.Route("/seasons", seasons.mountChildren)
			})
			mountKind(r, "/seasons", seasons, func(r chi.Router) {
				r.Route("/episodes", episodes.mountChildren)
			})
			mountKind(r, "/episodes", episodes, nil)
			mountKind(r, "/games", games, func(r chi.Router) {
				r.Route("/cheat", cheats.mount)
			})
			mountKind(r, "/music", music, func(r chi.Router) {
				r.Route("/songs", songs.mountChildren)
			})
			mountKind(r, "/songs", songs, nil)
			mountKind(r, "/programs", programs, nil)
			mountKind(r, "/pictures", pictures, nil)
			mountKind(r, "/genres", genres, nil)
		})
	})

	return r
}

// mounter is the part of resource used for routing.
type mounter interface {
	mountCollection(r chi.Router)
	mountItem(r chi.Router)
}

// mountKind registers the routes of one kind under path. extra adds routes
// below /{id}.
func mountKind(r chi.Router, path string, res mounter, extra func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		res.mountCollection(r)
		r.Route("/{id}", func(r chi.Router) {
			res.mountItem(r)
			if extra != nil {
				extra(r)
			}
		})
	})
}
