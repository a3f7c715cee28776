// Package catalog holds the snippets available for practice, grouped by language.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/codetype/internal/model"
)

// ErrUnknownLanguage matches any UnknownLanguageError via errors.Is.
var ErrUnknownLanguage = errors.New("unknown language")

// UnknownLanguageError reports a language that has no snippets in the catalog.
type UnknownLanguageError struct {
	Lang      string
	Available []model.Language
}

func (e *UnknownLanguageError) Error() string {
	names := make([]string, len(e.Available))
	for i, l := range e.Available {
		names[i] = string(l)
	}
	return fmt.Sprintf("unknown language %q (available: %s)", e.Lang, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrUnknownLanguage) true.
func (e *UnknownLanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSeed makes snippet selection deterministic.
func WithSeed(seed int64) Option {
	return func(c *Catalog) {
		c.rnd = rand.New(rand.NewSource(seed))
	}
}

// Catalog maps languages to snippets. It is safe for concurrent use.
type Catalog struct {
	byLang map[model.Language][]model.Snippet
	// folded lower-case name -> canonical spelling
	names map[string]model.Language

	mu  sync.Mutex
	rnd *rand.Rand
}

// New builds a catalog over the given snippets. Snippets with an empty
// language or text are skipped. Language names are matched case-insensitively;
// the first spelling seen becomes canonical.
func New(snippets []model.Snippet, opts ...Option) *Catalog {
	c := &Catalog{
		byLang: map[model.Language][]model.Snippet{},
		names:  map[string]model.Language{},
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.add(snippets)
	return c
}

// Default returns a catalog over the builtin snippets.
func Default(opts ...Option) *Catalog {
	return New(Builtin(), opts...)
}

func (c *Catalog) add(snippets []model.Snippet) {
	for _, s := range snippets {
		name := strings.TrimSpace(string(s.Lang))
		if name == "" || s.Text == "" {
			continue
		}
		key := strings.ToLower(name)
		lang, ok := c.names[key]
		if !ok {
			lang = model.Language(name)
			c.names[key] = lang
		}
		s.Lang = lang
		c.byLang[lang] = append(c.byLang[lang], s)
	}
}

// Merge returns a new catalog with extra snippets added after the existing ones.
func (c *Catalog) Merge(extra []model.Snippet, opts ...Option) *Catalog {
	all := make([]model.Snippet, 0, c.Len()+len(extra))
	for _, lang := range c.Languages() {
		all = append(all, c.byLang[lang]...)
	}
	all = append(all, extra...)
	return New(all, opts...)
}

// Languages returns the catalog languages sorted by name.
func (c *Catalog) Languages() []model.Language {
	langs := make([]model.Language, 0, len(c.byLang))
	for lang := range c.byLang {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return strings.ToLower(string(langs[i])) < strings.ToLower(string(langs[j]))
	})
	return langs
}

// Len returns the total number of snippets.
func (c *Catalog) Len() int {
	n := 0
	for _, s := range c.byLang {
		n += len(s)
	}
	return n
}

// Resolve returns the canonical spelling of lang.
func (c *Catalog) Resolve(lang string) (model.Language, error) {
	canonical, ok := c.names[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return "", &UnknownLanguageError{Lang: lang, Available: c.Languages()}
	}
	return canonical, nil
}

// Snippets returns a copy of the snippets for lang.
func (c *Catalog) Snippets(lang string) ([]model.Snippet, error) {
	canonical, err := c.Resolve(lang)
	if err != nil {
		return nil, err
	}
	src := c.byLang[canonical]
	out := make([]model.Snippet, len(src))
	copy(out, src)
	return out, nil
}

// Pick returns a uniformly random snippet for lang.
func (c *Catalog) Pick(lang string) (model.Snippet, error) {
	canonical, err := c.Resolve(lang)
	if err != nil {
		return model.Snippet{}, err
	}
	snippets := c.byLang[canonical]
	c.mu.Lock()
	idx := c.rnd.Intn(len(snippets))
	c.mu.Unlock()
	return snippets[idx], nil
}

// Next returns the language after lang in sorted order, wrapping around.
// An unknown lang yields the first language.
func (c *Catalog) Next(lang string) model.Language {
	langs := c.Languages()
	if len(langs) == 0 {
		return ""
	}
	canonical, err := c.Resolve(lang)
	if err != nil {
		return langs[0]
	}
	for i, l := range langs {
		if l == canonical {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}
