// The API server: sets up the routes using chi and links them to the
// handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harakki/comics-server/internal/analytics"
	"github.com/harakki/comics-server/internal/catalog"
	"github.com/harakki/comics-server/internal/collections"
	"github.com/harakki/comics-server/internal/core"
	"github.com/harakki/comics-server/internal/events"
	"github.com/harakki/comics-server/internal/media"
	"github.com/harakki/comics-server/internal/progress"
	"github.com/harakki/comics-server/internal/store"
)

// Server holds the dependencies for the API.
type Server struct {
	app         *core.App
	db          *sql.DB
	store       *store.Store
	tracker     *progress.Tracker
	catalog     *catalog.Service
	collections *collections.Service
	media       *media.Service
	analytics   *analytics.Service
}

// NewServer creates a new Server instance. The object store is passed
// in so tests can substitute a fake bucket.
func NewServer(app *core.App, bucket media.ObjectStore) *Server {
	st := store.New(app.DB())
	return &Server{
		app:         app,
		db:          app.DB(),
		store:       st,
		tracker:     progress.NewTracker(st),
		catalog:     catalog.NewService(st),
		collections: collections.NewService(st),
		media:       media.NewService(st, bucket),
		analytics:   analytics.NewService(st),
	}
}

// Store returns the store instance.
func (s *Server) Store() *store.Store { return s.store }

// MediaService returns the media service, used by the job scheduler.
func (s *Server) MediaService() *media.Service { return s.media }

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/users/login", s.handleLogin)

	// Share links work without a session; the token is the capability.
	r.Get("/api/shared/{token}", s.handleResolveShareToken)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)

		r.Get("/ws/activity", func(w http.ResponseWriter, r *http.Request) {
			events.ServeWs(s.app.Hub(), w, r)
		})

		r.Route("/api", func(r chi.Router) {
			// Catalog browsing
			r.Get("/titles", s.handleSearchTitles)
			r.Get("/titles/{titleID}", s.handleGetTitle)
			r.Get("/titles/slug/{slug}", s.handleGetTitleBySlug)
			r.Get("/titles/{titleID}/chapters", s.handleListChapters)
			r.Get("/titles/{titleID}/chapters/{chapterID}", s.handleGetChapter)
			r.Get("/titles/{titleID}/chapters/{chapterID}/pages", s.handleListChapterPages)

			// Reading progress
			r.Put("/titles/{titleID}/chapters/{chapterID}/read-status", s.handleSetReadStatus)
			r.Get("/titles/{titleID}/chapters/{chapterID}/read", s.handleGetReadStatus)
			r.Get("/titles/{titleID}/next-chapter", s.handleGetNextChapter)

			// Personal library
			r.Get("/library", s.handleListLibrary)
			r.Post("/library", s.handleAddLibraryEntry)
			r.Get("/library/{titleID}", s.handleGetLibraryEntry)
			r.Put("/library/{titleID}", s.handleUpdateLibraryEntry)
			r.Delete("/library/{titleID}", s.handleRemoveLibraryEntry)

			// Collections
			r.Get("/collections", s.handleListCollections)
			r.Post("/collections", s.handleCreateCollection)
			r.Get("/collections/{collectionID}", s.handleGetCollection)
			r.Put("/collections/{collectionID}", s.handleUpdateCollection)
			r.Delete("/collections/{collectionID}", s.handleDeleteCollection)
			r.Post("/collections/{collectionID}/titles/{titleID}", s.handleAddCollectionTitle)
			r.Delete("/collections/{collectionID}/titles/{titleID}", s.handleRemoveCollectionTitle)
			r.Post("/collections/{collectionID}/share", s.handleGenerateShareToken)
			r.Delete("/collections/{collectionID}/share", s.handleRevokeShareToken)

			// Interaction log and statistics
			r.Post("/titles/{titleID}/vote", s.handleVoteTitle)
			r.Get("/analytics/titles/{titleID}", s.handleTitleAnalytics)
			r.Get("/analytics/me", s.handleMyStats)

			// Reference data
			r.Get("/tags", s.handleListTags)
			r.Get("/authors", s.handleListAuthors)
			r.Get("/publishers", s.handleListPublishers)

			// Media downloads
			r.Get("/media/{mediaID}/url", s.handleMediaDownloadURL)

			// Catalog curation
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.AdminOnlyMiddleware)

				r.Post("/titles", s.handleCreateTitle)
				r.Put("/titles/{titleID}", s.handleUpdateTitle)
				r.Delete("/titles/{titleID}", s.handleDeleteTitle)
				r.Put("/titles/{titleID}/slug", s.handleReplaceTitleSlug)
				r.Post("/titles/{titleID}/authors", s.handleAddTitleAuthor)
				r.Delete("/titles/{titleID}/authors/{authorID}", s.handleRemoveTitleAuthor)

				r.Post("/titles/{titleID}/chapters", s.handleCreateChapter)
				r.Put("/titles/{titleID}/chapters/{chapterID}", s.handleUpdateChapter)
				r.Delete("/titles/{titleID}/chapters/{chapterID}", s.handleDeleteChapter)

				r.Post("/tags", s.handleCreateTag)
				r.Put("/tags/{tagID}", s.handleUpdateTag)
				r.Delete("/tags/{tagID}", s.handleDeleteTag)

				r.Post("/authors", s.handleCreateAuthor)
				r.Put("/authors/{authorID}", s.handleUpdateAuthor)
				r.Delete("/authors/{authorID}", s.handleDeleteAuthor)

				r.Post("/publishers", s.handleCreatePublisher)
				r.Put("/publishers/{publisherID}", s.handleUpdatePublisher)
				r.Delete("/publishers/{publisherID}", s.handleDeletePublisher)

				r.Post("/media/upload-url", s.handleRequestUpload)
				r.Post("/media/{mediaID}/confirm", s.handleConfirmUpload)
				r.Delete("/media/{mediaID}", s.handleDeleteMedia)

				r.Get("/users", s.handleAdminListUsers)
				r.Post("/users", s.handleAdminCreateUser)
				r.Delete("/users/{userID}", s.handleAdminDeleteUser)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
