package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/quietvalley/beacon/internal/agenda"
	"github.com/quietvalley/beacon/internal/store"
)

// How many events each calendar column shows.
const eventDisplayCap = 5

// mdRenderer is a goldmark instance configured for safe HTML output. Raw
// HTML in the input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type TemplateHandler struct {
	eventStore        *store.EventStore
	announcementStore *store.AnnouncementStore
	rewardStore       *store.RewardStore
	ideaStore         *store.ActivityIdeaStore
	templates         *template.Template
	logger            *slog.Logger
}

func NewTemplateHandler(es *store.EventStore, as *store.AnnouncementStore, rs *store.RewardStore, is *store.ActivityIdeaStore, logger *slog.Logger) *TemplateHandler {
	funcMap := template.FuncMap{
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		// Accepts both time.Time and the nullable *time.Time end field.
		"eventTime": func(t any) string {
			switch v := t.(type) {
			case time.Time:
				return v.Local().Format("Monday, Jan 2 3:04 PM")
			case *time.Time:
				if v != nil {
					return v.Local().Format("Monday, Jan 2 3:04 PM")
				}
			}
			return ""
		},
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob("web/templates/*.html"))
	return &TemplateHandler{
		eventStore:        es,
		announcementStore: as,
		rewardStore:       rs,
		ideaStore:         is,
		templates:         tmpl,
		logger:            logger,
	}
}

func (h *TemplateHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, "home.html", map[string]any{
		"Title": "Quiet Valley 2 Young Men",
	})
}

func (h *TemplateHandler) CalendarPage(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventStore.List()
	if err != nil {
		h.logger.Error("load events", "error", err)
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	h.render(w, "calendar.html", map[string]any{
		"Title":    "Calendar & Events",
		"Upcoming": agenda.Upcoming(events, now, eventDisplayCap),
		"Recent":   agenda.Recent(events, now, eventDisplayCap),
	})
}

func (h *TemplateHandler) AnnouncementsPage(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementStore.List()
	if err != nil {
		h.logger.Error("load announcements", "error", err)
		http.Error(w, "failed to load announcements", http.StatusInternalServerError)
		return
	}

	h.render(w, "announcements.html", map[string]any{
		"Title":         "Announcements",
		"Announcements": announcements,
	})
}

func (h *TemplateHandler) RewardsPage(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardStore.List()
	if err != nil {
		h.logger.Error("load rewards", "error", err)
		http.Error(w, "failed to load rewards", http.StatusInternalServerError)
		return
	}

	h.render(w, "rewards.html", map[string]any{
		"Title":   "Rewards & Recognition",
		"Rewards": rewards,
	})
}

func (h *TemplateHandler) IdeasPage(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.ideaStore.List()
	if err != nil {
		h.logger.Error("load activity ideas", "error", err)
		http.Error(w, "failed to load activity ideas", http.StatusInternalServerError)
		return
	}

	h.render(w, "ideas.html", map[string]any{
		"Title": "Activity Ideas",
		"Ideas": ideas,
	})
}

func (h *TemplateHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
