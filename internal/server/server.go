package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/quietvalley/beacon/internal/export"
	"github.com/quietvalley/beacon/internal/handler"
	"github.com/quietvalley/beacon/internal/middleware"
	"github.com/quietvalley/beacon/internal/store"
)

type Server struct {
	db              *sql.DB
	eventH          *handler.EventHandler
	announcementH   *handler.AnnouncementHandler
	rewardH         *handler.RewardHandler
	ideaH           *handler.ActivityIdeaHandler
	exportH         *handler.ExportHandler
	templateHandler *handler.TemplateHandler
	exportManager   *export.Manager
	rateLimiter     *middleware.RateLimiter
	logger          *slog.Logger
}

func New(db *sql.DB, exportCfg export.Config, logger *slog.Logger) *Server {
	eventStore := store.NewEventStore(db)
	announcementStore := store.NewAnnouncementStore(db)
	rewardStore := store.NewRewardStore(db)
	ideaStore := store.NewActivityIdeaStore(db)

	exportMgr := export.NewManager(exportCfg, export.Stores{
		Events:        eventStore,
		Announcements: announcementStore,
		Rewards:       rewardStore,
		ActivityIdeas: ideaStore,
	}, logger.With("component", "export"))

	return &Server{
		db:              db,
		eventH:          handler.NewEventHandler(eventStore, logger.With("component", "events")),
		announcementH:   handler.NewAnnouncementHandler(announcementStore, logger.With("component", "announcements")),
		rewardH:         handler.NewRewardHandler(rewardStore, logger.With("component", "rewards")),
		ideaH:           handler.NewActivityIdeaHandler(ideaStore, logger.With("component", "activity_ideas")),
		exportH:         handler.NewExportHandler(exportMgr, logger.With("component", "export_handler")),
		templateHandler: handler.NewTemplateHandler(eventStore, announcementStore, rewardStore, ideaStore, logger.With("component", "template")),
		exportManager:   exportMgr,
		rateLimiter:     middleware.NewRateLimiter(60, time.Minute),
		logger:          logger,
	}
}

// ExportManager returns the export manager so the entry point can own its lifecycle.
func (s *Server) ExportManager() *export.Manager {
	return s.exportManager
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Event API routes
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("PUT /api/events", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events", s.eventH.Delete)

	// Announcement API routes
	mux.HandleFunc("GET /api/announcements", s.announcementH.List)
	mux.HandleFunc("POST /api/announcements", s.announcementH.Create)
	mux.HandleFunc("PUT /api/announcements", s.announcementH.Update)
	mux.HandleFunc("DELETE /api/announcements", s.announcementH.Delete)

	// Reward API routes
	mux.HandleFunc("GET /api/rewards", s.rewardH.List)
	mux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	mux.HandleFunc("PUT /api/rewards", s.rewardH.Update)
	mux.HandleFunc("DELETE /api/rewards", s.rewardH.Delete)

	// Activity idea API routes
	mux.HandleFunc("GET /api/activity-ideas", s.ideaH.List)
	mux.HandleFunc("POST /api/activity-ideas", s.ideaH.Create)
	mux.HandleFunc("PUT /api/activity-ideas", s.ideaH.Update)
	mux.HandleFunc("DELETE /api/activity-ideas", s.ideaH.Delete)

	// Export routes
	mux.HandleFunc("POST /api/export", s.exportH.Run)
	mux.HandleFunc("GET /api/export/status", s.exportH.Status)

	// Page routes
	mux.HandleFunc("GET /", s.templateHandler.Home)
	mux.HandleFunc("GET /calendar", s.templateHandler.CalendarPage)
	mux.HandleFunc("GET /announcements", s.templateHandler.AnnouncementsPage)
	mux.HandleFunc("GET /rewards", s.templateHandler.RewardsPage)
	mux.HandleFunc("GET /ideas", s.templateHandler.IdeasPage)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("GET /health", s.healthHandler)

	limited := middleware.LimitWrites(s.rateLimiter)(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(limited)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
