package bot

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/paperbot/core/logger"
	"github.com/m3rciful/paperbot/core/telegram/format"
	"github.com/m3rciful/paperbot/core/telegram/keyboard"
	"github.com/m3rciful/paperbot/internal/catalog"
	"github.com/m3rciful/paperbot/internal/i18n"
	"github.com/m3rciful/paperbot/internal/nav"
)

const (
	classesPerRow = 3
	yearsPerRow   = 3
)

// Renderer builds localized screens. It holds no per-user state.
type Renderer struct {
	texts   *i18n.Table
	baseURL string
}

// NewRenderer returns a renderer resolving download links against baseURL.
func NewRenderer(texts *i18n.Table, baseURL string) *Renderer {
	return &Renderer{texts: texts, baseURL: baseURL}
}

func (r *Renderer) text(lang string, key i18n.Key, vars ...i18n.Vars) string {
	return r.texts.Text(lang, key, vars...)
}

func (r *Renderer) mainMenuRow(lang string) []Button {
	return []Button{{Text: r.text(lang, i18n.MainMenu), Target: nav.MainMenu{}}}
}

// Welcome is the root screen. It is always rendered in the default language.
func (r *Renderer) Welcome() Screen {
	row := make([]Button, 0, len(r.texts.Languages()))
	for _, l := range r.texts.Languages() {
		row = append(row, Button{Text: l.Label, Target: nav.Language{Code: l.Code}})
	}
	return Screen{
		Text: r.text(i18n.DefaultLanguage, i18n.Welcome),
		Rows: [][]Button{row},
	}
}

// Classes lists classes in rows of three, then Search, the admin panel for
// admins, and the main menu.
func (r *Renderer) Classes(lang string, header i18n.Key, classes []string, admin bool) Screen {
	btns := make([]Button, 0, len(classes))
	for _, class := range classes {
		btns = appendFitting(btns, Button{
			Text:   r.text(lang, i18n.ClassButton, i18n.Vars{"class": class}),
			Target: nav.Class{Class: class},
		})
	}
	rows := keyboard.Chunk(btns, classesPerRow)
	rows = append(rows, []Button{{Text: r.text(lang, i18n.Search), Target: nav.Search{}}})
	if admin {
		rows = append(rows, []Button{{Text: r.text(lang, i18n.AdminPanel), Target: nav.AdminPanel{}}})
	}
	rows = append(rows, r.mainMenuRow(lang))
	return Screen{Text: r.text(lang, header), Rows: rows}
}

// Subjects lists the subjects of a class one per row.
func (r *Renderer) Subjects(lang, class string, subjects []string) Screen {
	rows := make([][]Button, 0, len(subjects)+2)
	for _, subject := range subjects {
		btn := Button{Text: subject, Target: nav.Subject{Class: class, Subject: subject}}
		if fits(btn) {
			rows = append(rows, []Button{btn})
		}
	}
	rows = append(rows,
		[]Button{{Text: r.text(lang, i18n.Back), Target: nav.BackToClasses{}}},
		r.mainMenuRow(lang),
	)
	return Screen{
		Text: r.text(lang, i18n.ChooseSubject, i18n.Vars{"class": class}),
		Rows: rows,
	}
}

// Years lists years of a subject in rows of three. years must already be in
// display order.
func (r *Renderer) Years(lang, class, subject string, years []string) Screen {
	btns := make([]Button, 0, len(years))
	for _, year := range years {
		btns = appendFitting(btns, Button{
			Text:   year,
			Target: nav.Year{Class: class, Subject: subject, Year: year},
		})
	}
	rows := keyboard.Chunk(btns, yearsPerRow)
	rows = append(rows,
		[]Button{{Text: r.text(lang, i18n.Back), Target: nav.BackToSubjects{Class: class}}},
		r.mainMenuRow(lang),
	)
	return Screen{
		Text: r.text(lang, i18n.ChooseYear, i18n.Vars{"class": class, "subject": subject}),
		Rows: rows,
	}
}

// Result shows the download link of a paper.
func (r *Renderer) Result(lang string, e catalog.Entry) Screen {
	link := catalog.URL(r.baseURL, e.Path)
	return Screen{
		Text: r.text(lang, i18n.DownloadLink, i18n.Vars{
			"subject": format.EscapeV1(e.Subject),
			"class":   format.EscapeV1(e.Class),
			"year":    format.EscapeV1(e.Year),
			"url":     link,
		}),
		Rows:     [][]Button{r.mainMenuRow(lang)},
		Markdown: true,
		Link:     link,
	}
}

// NotFound replaces any screen whose catalog lookup failed.
func (r *Renderer) NotFound(lang string) Screen {
	return Screen{Text: r.text(lang, i18n.PaperNotFound), Rows: [][]Button{r.mainMenuRow(lang)}}
}

// SearchPrompt asks for a free-text query.
func (r *Renderer) SearchPrompt(lang string) Screen {
	return Screen{Text: r.text(lang, i18n.SearchPrompt), Rows: [][]Button{r.mainMenuRow(lang)}}
}

// SearchResults lists matches one per row, each leading to its result screen.
func (r *Renderer) SearchResults(lang, query string, results []catalog.Entry) Screen {
	if len(results) == 0 {
		return Screen{
			Text: r.text(lang, i18n.NoResults, i18n.Vars{"query": query}),
			Rows: [][]Button{r.mainMenuRow(lang)},
		}
	}
	rows := make([][]Button, 0, len(results)+1)
	for _, e := range results {
		btn := Button{
			Text:   r.text(lang, i18n.SearchResult, i18n.Vars{"subject": e.Subject, "class": e.Class, "year": e.Year}),
			Target: nav.Year{Class: e.Class, Subject: e.Subject, Year: e.Year},
		}
		if fits(btn) {
			rows = append(rows, []Button{btn})
		}
	}
	rows = append(rows, r.mainMenuRow(lang))
	return Screen{
		Text: r.text(lang, i18n.SearchResults, i18n.Vars{"query": query}),
		Rows: rows,
	}
}

// AdminPanel offers the admin actions.
func (r *Renderer) AdminPanel(lang string) Screen {
	return Screen{
		Text: r.text(lang, i18n.AdminWelcome),
		Rows: [][]Button{
			{{Text: r.text(lang, i18n.AddPaper), Target: nav.AdminAdd{}}},
			{{Text: r.text(lang, i18n.ViewPapers), Target: nav.AdminView{}}},
			r.mainMenuRow(lang),
		},
	}
}

// AddPaperFormat explains the /add_paper syntax.
func (r *Renderer) AddPaperFormat(lang string, withMenu bool) Screen {
	s := Screen{Text: r.text(lang, i18n.AddPaperFormat), Markdown: true}
	if withMenu {
		s.Rows = [][]Button{r.mainMenuRow(lang)}
	}
	return s
}

// CatalogSummary lists paper counts per class and subject with the total.
func (r *Renderer) CatalogSummary(lang string, summary []catalog.ClassSummary) Screen {
	var b strings.Builder
	total := 0
	b.WriteString(r.text(lang, i18n.ViewHeader))
	b.WriteString("\n\n")
	for _, cs := range summary {
		b.WriteString(r.text(lang, i18n.ViewClass, i18n.Vars{"class": format.EscapeV1(cs.Class)}))
		b.WriteString("\n")
		for _, ss := range cs.Subjects {
			b.WriteString(r.text(lang, i18n.ViewSubject, i18n.Vars{
				"subject": format.EscapeV1(ss.Subject),
				"count":   strconv.Itoa(len(ss.Years)),
				"years":   format.EscapeV1(strings.Join(ss.Years, ", ")),
			}))
			b.WriteString("\n")
			total += len(ss.Years)
		}
		b.WriteString("\n")
	}
	b.WriteString(r.text(lang, i18n.ViewTotal, i18n.Vars{"total": strconv.Itoa(total)}))

	return Screen{
		Text: b.String(),
		Rows: [][]Button{
			{{Text: r.text(lang, i18n.AdminPanel), Target: nav.AdminPanel{}}},
			r.mainMenuRow(lang),
		},
		Markdown: true,
	}
}

// Message is a plain text screen without buttons.
func (r *Renderer) Message(lang string, key i18n.Key, vars ...i18n.Vars) Screen {
	return Screen{Text: r.text(lang, key, vars...)}
}

// fits drops buttons whose callback data Telegram would reject; one oversized
// button would otherwise fail the whole message.
func fits(b Button) bool {
	if nav.Fits(b.Target) {
		return true
	}
	logger.Catalog.Warn("button skipped",
		slog.String("event", "nav.token_too_long"),
		slog.String("token", logger.SanitizeLimit(nav.Encode(b.Target), 128)),
	)
	return false
}

func appendFitting(btns []Button, b Button) []Button {
	if fits(b) {
		return append(btns, b)
	}
	return btns
}
