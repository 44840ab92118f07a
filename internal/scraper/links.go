package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/gbfomc/internal/pattern"
)

// DocumentLink is an anchor on a year page that points at a recognized document.
type DocumentLink struct {
	Convention string `json:"convention"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	Text       string `json:"text"`
}

// FetchLinks fetches a page and lists its document links.
func (s *Scraper) FetchLinks(ctx context.Context, pageURL string, reg *pattern.Registry) ([]DocumentLink, error) {
	content, err := s.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return parseLinks(strings.NewReader(content), pageURL, reg)
}

// parseLinks extracts anchors whose href matches a convention in reg.
// Relative hrefs are resolved against pageURL.
func parseLinks(r io.Reader, pageURL string, reg *pattern.Registry) ([]DocumentLink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	links := make([]DocumentLink, 0)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)

		conv, ok := reg.Classify(href)
		if !ok {
			return
		}

		abs := href
		if ref, err := url.Parse(href); err == nil {
			abs = base.ResolveReference(ref).String()
		}
		if seen[abs] {
			return
		}
		seen[abs] = true

		links = append(links, DocumentLink{
			Convention: conv.Name,
			Filename:   conv.Find(href),
			URL:        abs,
			Text:       strings.Join(strings.Fields(sel.Text()), " "),
		})
	})

	return links, nil
}
