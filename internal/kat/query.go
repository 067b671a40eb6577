package kat

import (
	"strconv"
	"strings"
)

// Spec is a search specification: either Text or a Query.
type Spec interface {
	endpoint() (string, error)
	page() int
}

// Text is a plain free-text search. It is sent as-is, without filters.
type Text string

func (t Text) endpoint() (string, error) {
	if t == "" {
		return "", ErrQueryRequired
	}
	return string(t), nil
}

func (t Text) page() int {
	return 0
}

// Query is a structured search. Zero-valued fields are left out of the endpoint.
type Query struct {
	Query       string `json:"query,omitempty"`
	Category    string `json:"category,omitempty"`
	Uploader    string `json:"uploader,omitempty"`
	MinSeeds    int    `json:"min_seeds,omitempty"`
	Age         string `json:"age,omitempty"`
	MinFiles    int    `json:"min_files,omitempty"`
	IMDB        string `json:"imdb,omitempty"`
	TVRage      string `json:"tvrage,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
	Language    string `json:"language,omitempty"`
	AdultFilter int    `json:"adult_filter,omitempty"`
	Verified    int    `json:"verified,omitempty"`
	Season      int    `json:"season,omitempty"`
	Episode     int    `json:"episode,omitempty"`
	PlatformID  string `json:"platform_id,omitempty"`
	Page        int    `json:"page,omitempty"`
	SortBy      string `json:"sort_by,omitempty"`
	Order       string `json:"order,omitempty"`
}

func (q Query) page() int {
	return q.Page
}

func (q Query) endpoint() (string, error) {
	if q.Query == "" {
		return "", ErrQueryRequired
	}

	var b strings.Builder
	b.WriteString(q.Query)

	token := func(label, value string) {
		b.WriteString(" " + label + ":" + value)
	}
	number := func(label string, value int) {
		if value != 0 {
			token(label, strconv.Itoa(value))
		}
	}
	text := func(label, value string) {
		if value != "" {
			token(label, value)
		}
	}

	text("category", q.Category)
	text("user", q.Uploader)
	number("seeds", q.MinSeeds)
	text("age", q.Age)
	number("files", q.MinFiles)
	if q.IMDB != "" {
		token("imdb", digitsOnly(q.IMDB))
	}
	text("tv", q.TVRage)
	text("isbn", q.ISBN)
	if q.Language != "" {
		token("lang_id", lookupCode(languageCodes, q.Language))
	}
	number("is_safe", q.AdultFilter)
	number("verified", q.Verified)
	number("season", q.Season)
	number("episode", q.Episode)
	if q.PlatformID != "" {
		token("platform_id", lookupCode(platformCodes, q.PlatformID))
	}

	if q.Page != 0 {
		b.WriteString("/" + strconv.Itoa(q.Page))
	}
	if q.SortBy != "" {
		b.WriteString("/?field=" + q.SortBy)
	}
	if q.Order != "" {
		b.WriteString("&order=" + q.Order)
	}

	return b.String(), nil
}

// BuildEndpoint turns a search spec into the path appended to the search URL.
// On an input error the returned endpoint is empty and the error is an *InputError.
func BuildEndpoint(spec Spec) (string, error) {
	if spec == nil {
		return "", &InputError{Err: ErrInvalidQuery}
	}
	if q, ok := spec.(*Query); ok && q == nil {
		return "", &InputError{Err: ErrInvalidQuery}
	}

	endpoint, err := spec.endpoint()
	if err != nil {
		return "", &InputError{Err: err}
	}
	return endpoint, nil
}

// PageOf returns the page a spec asks for, 1 when unset.
func PageOf(spec Spec) int {
	if spec == nil {
		return 1
	}
	if q, ok := spec.(*Query); ok && q == nil {
		return 1
	}
	if p := spec.page(); p != 0 {
		return p
	}
	return 1
}

// lookupCode returns the table value for key, or "" for unknown keys.
func lookupCode(table map[string]int, key string) string {
	code, ok := table[key]
	if !ok {
		return ""
	}
	return strconv.Itoa(code)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
