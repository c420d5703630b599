// Package bot implements the question paper menus: navigation between
// catalog levels, search and the admin actions, plus their telebot handlers.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/paperbot/core/logger"
	"github.com/m3rciful/paperbot/core/telegram/state"
	"github.com/m3rciful/paperbot/internal/catalog"
	"github.com/m3rciful/paperbot/internal/i18n"
	"github.com/m3rciful/paperbot/internal/metrics"
	"github.com/m3rciful/paperbot/internal/nav"
)

// ErrUnauthorized is returned when a non-admin user triggers an admin action.
var ErrUnauthorized = errors.New("bot: unauthorized")

// Options configures a Navigator.
type Options struct {
	Catalog  *catalog.Store
	Sessions state.Manager
	Texts    *i18n.Table
	BaseURL  string
	// AdminID is the only user allowed to use admin actions. Zero disables them.
	AdminID     int64
	SearchLimit int
	Metrics     *metrics.Metrics
}

// Navigator turns selections into screens. It owns no state of its own; the
// catalog and sessions are shared with the rest of the application.
type Navigator struct {
	catalog     *catalog.Store
	sessions    state.Manager
	texts       *i18n.Table
	render      *Renderer
	adminID     int64
	searchLimit int
	metrics     *metrics.Metrics
}

// NewNavigator builds a Navigator. Nil Texts and Sessions get defaults.
func NewNavigator(opts Options) *Navigator {
	texts := opts.Texts
	if texts == nil {
		texts = i18n.Default()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = state.NewMemoryManager(i18n.DefaultLanguage)
	}
	store := opts.Catalog
	if store == nil {
		store = catalog.NewStore()
	}
	limit := opts.SearchLimit
	if limit <= 0 {
		limit = catalog.DefaultSearchLimit
	}
	return &Navigator{
		catalog:     store,
		sessions:    sessions,
		texts:       texts,
		render:      NewRenderer(texts, opts.BaseURL),
		adminID:     opts.AdminID,
		searchLimit: limit,
		metrics:     opts.Metrics,
	}
}

// Sessions exposes the session store shared with the handlers.
func (n *Navigator) Sessions() state.Manager { return n.sessions }

// IsAdmin reports whether userID is the configured admin.
func (n *Navigator) IsAdmin(userID int64) bool {
	return n.adminID != 0 && userID == n.adminID
}

func (n *Navigator) lang(userID int64) string {
	return n.texts.Normalize(n.sessions.Language(userID))
}

// Start renders the root screen with the language chooser.
func (n *Navigator) Start() Screen {
	return n.render.Welcome()
}

// Navigate applies one selection for userID. Lookup misses render the
// not-found screen; unauthorized admin selections produce an alert only.
func (n *Navigator) Navigate(userID int64, sel nav.Selection) Outcome {
	switch s := sel.(type) {
	case nav.Language:
		lang := n.texts.Normalize(s.Code)
		n.sessions.SetLanguage(userID, lang)
		return n.show(n.classes(userID, lang, i18n.LanguageSet))

	case nav.MainMenu, nav.BackToClasses:
		return n.show(n.classes(userID, n.lang(userID), i18n.ChooseClass))

	case nav.Class:
		return n.show(n.subjects(n.lang(userID), s.Class))

	case nav.BackToSubjects:
		return n.show(n.subjects(n.lang(userID), s.Class))

	case nav.Subject:
		lang := n.lang(userID)
		years, ok := n.catalog.Years(s.Class, s.Subject)
		if !ok {
			return n.show(n.render.NotFound(lang))
		}
		return n.show(n.render.Years(lang, s.Class, s.Subject, years))

	case nav.Year:
		lang := n.lang(userID)
		path, ok := n.catalog.Lookup(s.Class, s.Subject, s.Year)
		if !ok {
			return n.show(n.render.NotFound(lang))
		}
		return n.show(n.render.Result(lang, catalog.Entry{
			Class: s.Class, Subject: s.Subject, Year: s.Year, Path: path,
		}))

	case nav.Search:
		n.sessions.SetState(userID, state.StateAwaitingSearch)
		return n.show(n.render.SearchPrompt(n.lang(userID)))

	case nav.AdminPanel:
		if !n.IsAdmin(userID) {
			return n.deny(userID, s)
		}
		return n.show(n.render.AdminPanel(n.lang(userID)))

	case nav.AdminAdd:
		if !n.IsAdmin(userID) {
			return n.deny(userID, s)
		}
		return n.show(n.render.AddPaperFormat(n.lang(userID), true))

	case nav.AdminView:
		if !n.IsAdmin(userID) {
			return n.deny(userID, s)
		}
		return n.show(n.render.CatalogSummary(n.lang(userID), n.catalog.Summary()))
	}
	return n.show(n.render.NotFound(n.lang(userID)))
}

func (n *Navigator) show(s Screen) Outcome {
	return Outcome{Screen: s}
}

func (n *Navigator) deny(userID int64, sel nav.Selection) Outcome {
	logger.Admin.Warn("unauthorized",
		slog.String("event", "admin.unauthorized"),
		slog.Int64("user_id", userID),
		slog.String("action", string(sel.Kind())),
	)
	return Outcome{Alert: n.texts.Text(n.lang(userID), i18n.UnauthorizedCB)}
}

func (n *Navigator) classes(userID int64, lang string, header i18n.Key) Screen {
	return n.render.Classes(lang, header, n.catalog.Classes(), n.IsAdmin(userID))
}

func (n *Navigator) subjects(lang, class string) Screen {
	subjects, ok := n.catalog.Subjects(class)
	if !ok {
		return n.render.NotFound(lang)
	}
	return n.render.Subjects(lang, class, subjects)
}

// Search runs a free-text query for userID and renders the matches.
func (n *Navigator) Search(ctx context.Context, userID int64, query string) Screen {
	normalized := catalog.Normalize(query)
	results := n.catalog.Search(normalized, n.searchLimit)
	n.metrics.ObserveSearch(len(results))
	logger.LogEvent(ctx, logger.Search, slog.LevelInfo, "search.done",
		slog.Int64("user_id", userID),
		slog.String("query", logger.SanitizeLimit(normalized, 128)),
		slog.Int("results", len(results)),
	)
	return n.render.SearchResults(n.lang(userID), normalized, results)
}

// Admin renders the admin panel for the /admin command.
func (n *Navigator) Admin(userID int64) (Screen, error) {
	lang := n.lang(userID)
	if !n.IsAdmin(userID) {
		return n.render.Message(lang, i18n.Unauthorized), ErrUnauthorized
	}
	return n.render.AdminPanel(lang), nil
}

// AddPaper parses "Class|Subject|Year|Path" and stores the entry. Nothing is
// changed unless the user is the admin and the input has exactly four fields.
// The returned screen is meant for the user in every case.
func (n *Navigator) AddPaper(ctx context.Context, userID int64, raw string) (Screen, error) {
	lang := n.lang(userID)
	if !n.IsAdmin(userID) {
		return n.render.Message(lang, i18n.Unauthorized), ErrUnauthorized
	}
	if strings.TrimSpace(raw) == "" {
		return n.render.AddPaperFormat(lang, false), nil
	}

	e, err := catalog.ParseEntry(raw)
	if err != nil {
		return n.render.Message(lang, i18n.PaperAddError), fmt.Errorf("bot: add paper: %w", err)
	}

	replaced := n.catalog.Put(e)
	size := n.catalog.Len()
	n.metrics.PaperAdded(size)
	logger.LogEvent(ctx, logger.Catalog, slog.LevelInfo, "catalog.put",
		slog.Int64("user_id", userID),
		slog.String("class", e.Class),
		slog.String("subject", logger.SanitizeLimit(e.Subject, 128)),
		slog.String("year", e.Year),
		slog.Bool("replaced", replaced),
		slog.Int("entries", size),
	)
	return n.render.Message(lang, i18n.PaperAdded, i18n.Vars{
		"class":   e.Class,
		"subject": e.Subject,
		"year":    e.Year,
	}), nil
}

// UnknownText answers free text that is not a search query.
func (n *Navigator) UnknownText(userID int64) Screen {
	return n.render.Message(n.lang(userID), i18n.UnknownText)
}
