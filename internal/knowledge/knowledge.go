// Package knowledge holds bilingual first-line guidance articles that can be
// browsed offline and are linked to symptom checks by keyword.
package knowledge

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/bisheshoggo/symtriage/internal/triage"
)

// Article is one guidance entry.
type Article struct {
	ID       string      `json:"id" yaml:"id"`
	Category string      `json:"category" yaml:"category"`
	Title    triage.Text `json:"title" yaml:"title"`
	Content  triage.Text `json:"content" yaml:"content"`
	Keywords []string    `json:"keywords" yaml:"keywords"`
}

// Category groups articles for browsing.
type Category struct {
	ID    string      `json:"id" yaml:"id"`
	Label triage.Text `json:"label" yaml:"label"`
}

// LocalizedArticle is an Article rendered in one language.
type LocalizedArticle struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Localize renders a in lang.
func (a Article) Localize(lang triage.Language) LocalizedArticle {
	return LocalizedArticle{
		ID:       a.ID,
		Category: a.Category,
		Title:    a.Title.In(lang),
		Content:  a.Content.In(lang),
	}
}

// Base is a read-only set of articles, safe for concurrent use.
type Base struct {
	articles   []Article
	categories []Category
}

// Default returns the built-in articles.
func Default() *Base {
	return &Base{
		articles:   slices.Clone(builtinArticles),
		categories: slices.Clone(builtinCategories),
	}
}

// file is the on-disk YAML layout read by Load.
type file struct {
	Articles []Article `yaml:"articles"`
}

// Load returns the built-in articles extended by the YAML file at path. An
// article whose ID matches a built-in one replaces it. An empty path
// returns Default.
func Load(path string) (*Base, error) {
	b := Default()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing knowledge file %s: %w", path, err)
	}

	for _, a := range f.Articles {
		if a.ID == "" {
			return nil, fmt.Errorf("knowledge file %s: article without id", path)
		}
		if !b.HasCategory(a.Category) {
			return nil, fmt.Errorf("knowledge file %s: article %s has unknown category %q", path, a.ID, a.Category)
		}
		if i := slices.IndexFunc(b.articles, func(x Article) bool { return x.ID == a.ID }); i >= 0 {
			b.articles[i] = a
		} else {
			b.articles = append(b.articles, a)
		}
	}
	return b, nil
}

// HasCategory reports whether id is a known category.
func (b *Base) HasCategory(id string) bool {
	return slices.ContainsFunc(b.categories, func(c Category) bool { return c.ID == id })
}

// Categories returns the browsable categories in display order.
func (b *Base) Categories() []Category {
	return slices.Clone(b.categories)
}

// All returns every article.
func (b *Base) All() []Article {
	return slices.Clone(b.articles)
}

// ByCategory returns the articles in a category, or none for an unknown one.
func (b *Base) ByCategory(category string) []Article {
	var out []Article
	for _, a := range b.articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Search returns articles whose title or content in lang, or whose keywords
// in either language, contain query. Matching is case-insensitive
// substring; an empty query matches everything.
func (b *Base) Search(query string, lang triage.Language) []Article {
	q := fold(query)
	var out []Article
	for _, a := range b.articles {
		text := fold(a.Title.In(lang) + " " + a.Content.In(lang))
		keywords := fold(strings.Join(a.Keywords, " "))
		if strings.Contains(text, q) || strings.Contains(keywords, q) {
			out = append(out, a)
		}
	}
	return out
}

// Related returns up to limit articles with a keyword that appears as whole
// words in the report's symptoms or notes. limit <= 0 means no limit.
func (b *Base) Related(r triage.Report, limit int) []Article {
	words := tokens(strings.Join(r.Symptoms, " ") + " " + r.Notes)
	if len(words) == 0 {
		return nil
	}

	var out []Article
	for _, a := range b.articles {
		for _, kw := range a.Keywords {
			if containsRun(words, tokens(kw)) {
				out = append(out, a)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func fold(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// tokens splits s into words. Combining marks stay inside a word so Bengali
// vowel signs and conjuncts are not split apart.
func tokens(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
}

// containsRun reports whether needle occurs as consecutive words in hay.
func containsRun(hay, needle []string) bool {
	if len(needle) == 0 {
		return false
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
