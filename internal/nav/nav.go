// Package nav defines the navigation selections carried by inline buttons and
// their callback-data encoding.
//
// Tokens use "_" both as a field separator and as a legal character inside
// subject names, so subjects are rebuilt from every middle segment. Class ids
// and years must not contain "_".
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTokenBytes is the Telegram limit for callback data.
const MaxTokenBytes = 64

var (
	// ErrUnknownToken is returned for callback data outside the grammar.
	ErrUnknownToken = errors.New("nav: unknown token")
	// ErrMalformedToken is returned when a known prefix lacks required segments.
	ErrMalformedToken = errors.New("nav: malformed token")
)

// Kind names a selection variant. It doubles as the callback registry key.
type Kind string

const (
	KindLanguage       Kind = "lang"
	KindMainMenu       Kind = "main_menu"
	KindClass          Kind = "class"
	KindSubject        Kind = "subject"
	KindYear           Kind = "year"
	KindBackToClasses  Kind = "back_to_class"
	KindBackToSubjects Kind = "back_to_subject"
	KindSearch         Kind = "search"
	KindAdminPanel     Kind = "admin_panel"
	KindAdminAdd       Kind = "admin_add"
	KindAdminView      Kind = "admin_view"
)

const sep = "_"

// Kinds lists every selection kind.
func Kinds() []Kind {
	return []Kind{
		KindLanguage, KindMainMenu, KindClass, KindSubject, KindYear,
		KindBackToClasses, KindBackToSubjects, KindSearch,
		KindAdminPanel, KindAdminAdd, KindAdminView,
	}
}

// Selection is one step of the menu navigation.
type Selection interface {
	Kind() Kind
	Token() string
}

type (
	// Language picks the interface language.
	Language struct{ Code string }
	// MainMenu returns to the class list.
	MainMenu struct{}
	// Class opens the subject list of a class.
	Class struct{ Class string }
	// Subject opens the year list of a subject.
	Subject struct{ Class, Subject string }
	// Year opens the download link of a paper.
	Year struct{ Class, Subject, Year string }
	// BackToClasses returns from a subject list.
	BackToClasses struct{}
	// BackToSubjects returns from a year list.
	BackToSubjects struct{ Class string }
	// Search asks for a free-text query.
	Search struct{}
	// AdminPanel opens the admin menu.
	AdminPanel struct{}
	// AdminAdd shows how to add a paper.
	AdminAdd struct{}
	// AdminView lists the catalog contents.
	AdminView struct{}
)

func (Language) Kind() Kind { return KindLanguage }
func (MainMenu) Kind() Kind { return KindMainMenu }
func (Class) Kind() Kind { return KindClass }
func (Subject) Kind() Kind { return KindSubject }
func (Year) Kind() Kind { return KindYear }
func (BackToClasses) Kind() Kind { return KindBackToClasses }
func (BackToSubjects) Kind() Kind { return KindBackToSubjects }
func (Search) Kind() Kind { return KindSearch }
func (AdminPanel) Kind() Kind { return KindAdminPanel }
func (AdminAdd) Kind() Kind { return KindAdminAdd }
func (AdminView) Kind() Kind { return KindAdminView }

func (s Language) Token() string { return join(KindLanguage, s.Code) }
func (MainMenu) Token() string { return string(KindMainMenu) }
func (s Class) Token() string { return join(KindClass, s.Class) }
func (s Subject) Token() string { return join(KindSubject, s.Class, s.Subject) }
func (s Year) Token() string { return join(KindYear, s.Class, s.Subject, s.Year) }
func (BackToClasses) Token() string { return string(KindBackToClasses) }
func (s BackToSubjects) Token() string { return join(KindBackToSubjects, s.Class) }
func (Search) Token() string { return string(KindSearch) }
func (AdminPanel) Token() string { return string(KindAdminPanel) }
func (AdminAdd) Token() string { return string(KindAdminAdd) }
func (AdminView) Token() string { return string(KindAdminView) }

func join(kind Kind, parts ...string) string {
	return string(kind) + sep + strings.Join(parts, sep)
}

// Encode returns the callback data for a selection.
func Encode(s Selection) string {
	return s.Token()
}

// Fits reports whether the encoded selection is accepted by Telegram.
func Fits(s Selection) bool {
	return len(s.Token()) <= MaxTokenBytes
}

var fixed = map[string]Selection{
	string(KindMainMenu):      MainMenu{},
	string(KindBackToClasses): BackToClasses{},
	string(KindSearch):        Search{},
	string(KindAdminPanel):    AdminPanel{},
	string(KindAdminAdd):      AdminAdd{},
	string(KindAdminView):     AdminView{},
}

// Decode parses callback data back into a selection.
func Decode(token string) (Selection, error) {
	if s, ok := fixed[token]; ok {
		return s, nil
	}

	// back_to_subject_ must be tried before the shorter prefixes.
	if rest, ok := cut(token, KindBackToSubjects); ok {
		if rest == "" {
			return nil, malformed(token)
		}
		return BackToSubjects{Class: rest}, nil
	}
	if rest, ok := cut(token, KindLanguage); ok {
		if rest == "" {
			return nil, malformed(token)
		}
		return Language{Code: rest}, nil
	}
	if rest, ok := cut(token, KindClass); ok {
		if rest == "" {
			return nil, malformed(token)
		}
		return Class{Class: rest}, nil
	}
	if rest, ok := cut(token, KindSubject); ok {
		parts := strings.Split(rest, sep)
		if len(parts) < 2 || parts[0] == "" {
			return nil, malformed(token)
		}
		return Subject{Class: parts[0], Subject: strings.Join(parts[1:], sep)}, nil
	}
	if rest, ok := cut(token, KindYear); ok {
		parts := strings.Split(rest, sep)
		if len(parts) < 3 || parts[0] == "" || parts[len(parts)-1] == "" {
			return nil, malformed(token)
		}
		return Year{
			Class:   parts[0],
			Subject: strings.Join(parts[1:len(parts)-1], sep),
			Year:    parts[len(parts)-1],
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownToken, token)
}

// KindOf returns the registry key for callback data, or "" when it cannot be decoded.
func KindOf(token string) string {
	s, err := Decode(token)
	if err != nil {
		return ""
	}
	return string(s.Kind())
}

func cut(token string, kind Kind) (string, bool) {
	return strings.CutPrefix(token, string(kind)+sep)
}

func malformed(token string) error {
	return fmt.Errorf("%w: %q", ErrMalformedToken, token)
}
