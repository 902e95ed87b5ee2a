// Package markdown renders sanitized HTML from markdown source.
package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Markdown wraps markdown source and caches its rendered forms. It is safe
// for concurrent use once constructed.
type Markdown struct {
	// Source is the markdown source code.
	Source string

	once         sync.Once
	renderedHTML template.HTML
	renderedText template.HTML
}

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsFractions | blackfriday.SmartypantsDashes | blackfriday.SmartypantsLatexDashes,
	})
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Tables | blackfriday.FencedCode | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.NoEmptyLineBeforeBlock | blackfriday.HeadingIDs | blackfriday.AutoHeadingIDs | blackfriday.DefinitionLists
	policy       = bluemonday.UGCPolicy()
)

func NewMarkdown(source string) *Markdown {
	return &Markdown{Source: source}
}

func (m *Markdown) render() {
	m.once.Do(func() {
		if m.Source == "" {
			return
		}
		unsafe := blackfriday.Run([]byte(m.Source),
			blackfriday.WithRenderer(bfRenderer),
			blackfriday.WithExtensions(bfExtensions),
		)
		m.renderedHTML = template.HTML(bytes.TrimSpace(policy.SanitizeBytes(unsafe)))
		// Use bluemonday to remove all tags from the output HTML.
		m.renderedText = template.HTML(bytes.TrimSpace(bluemonday.StrictPolicy().SanitizeBytes(unsafe)))
	})
}

// Render converts the Markdown Source into sanitized HTML.
func (m *Markdown) Render() template.HTML {
	m.render()
	return m.renderedHTML
}

// PlainText returns the rendered text with every tag stripped.
func (m *Markdown) PlainText() template.HTML {
	m.render()
	return m.renderedText
}

// UnmarshalJSON implements json.Unmarshaler so Markdown can be decoded from JSON.
func (m *Markdown) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("Markdown.UnmarshalJSON: %w", err)
	}
	m.Source = s
	m.once = sync.Once{}
	m.renderedHTML, m.renderedText = "", ""
	return nil
}
