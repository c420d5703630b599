// Package i18n holds the bot's message templates per language.
//
// Templates use {name} placeholders. Lookups try the requested language, then
// DefaultLanguage, then return the key itself.
package i18n

import (
	"sort"
	"strings"
)

// DefaultLanguage is used for users who have not picked a language.
const DefaultLanguage = "en"

// Key identifies a message template.
type Key string

const (
	Welcome        Key = "welcome"
	LanguageSet    Key = "language_set"
	ChooseClass    Key = "choose_class"
	ChooseSubject  Key = "choose_subject"
	ChooseYear     Key = "choose_year"
	ClassButton    Key = "class_button"
	DownloadLink   Key = "download_link"
	PaperNotFound  Key = "paper_not_found"
	MainMenu       Key = "main_menu"
	Back           Key = "back"
	Search         Key = "search"
	SearchPrompt   Key = "search_prompt"
	SearchResults  Key = "search_results"
	SearchResult   Key = "search_result"
	NoResults      Key = "no_results"
	AdminPanel     Key = "admin_panel"
	AdminWelcome   Key = "admin_welcome"
	AddPaper       Key = "add_paper"
	ViewPapers     Key = "view_papers"
	Unauthorized   Key = "unauthorized"
	UnauthorizedCB Key = "unauthorized_alert"
	AddPaperFormat Key = "add_paper_format"
	PaperAdded     Key = "paper_added"
	PaperAddError  Key = "paper_add_error"
	ViewHeader     Key = "view_header"
	ViewClass      Key = "view_class"
	ViewSubject    Key = "view_subject"
	ViewTotal      Key = "view_total"
	UnknownText    Key = "unknown_text"
	SlowDown       Key = "slow_down"
)

// Vars are substituted into {name} placeholders.
type Vars map[string]string

// Language is a selectable interface language.
type Language struct {
	Code  string
	Label string
}

// Table maps language codes to message templates.
type Table struct {
	languages []Language
	messages  map[string]map[Key]string
}

// New builds a table. The default language must be present.
func New(languages []Language, messages map[string]map[Key]string) *Table {
	return &Table{languages: languages, messages: messages}
}

// Languages lists selectable languages in display order.
func (t *Table) Languages() []Language {
	return append([]Language(nil), t.languages...)
}

// Supported reports whether lang has a message table.
func (t *Table) Supported(lang string) bool {
	_, ok := t.messages[lang]
	return ok
}

// Normalize maps unsupported language codes to DefaultLanguage.
func (t *Table) Normalize(lang string) string {
	if t.Supported(lang) {
		return lang
	}
	return DefaultLanguage
}

// Text renders key in lang, falling back to DefaultLanguage.
func (t *Table) Text(lang string, key Key, vars ...Vars) string {
	tmpl, ok := t.messages[lang][key]
	if !ok {
		tmpl, ok = t.messages[DefaultLanguage][key]
	}
	if !ok {
		return string(key)
	}
	if len(vars) == 0 || len(vars[0]) == 0 {
		return tmpl
	}
	return expand(tmpl, vars[0])
}

// MissingKeys lists keys of the default language absent from lang.
func (t *Table) MissingKeys(lang string) []Key {
	var missing []Key
	for key := range t.messages[DefaultLanguage] {
		if _, ok := t.messages[lang][key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func expand(tmpl string, vars Vars) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
