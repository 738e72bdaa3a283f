package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// isWebURL reports whether an argument is an http(s) URL.
func isWebURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// textInput wraps already-fetched content as an input. Web pages are the
// one input kind held in memory: the page had to be downloaded whole to
// convert it anyway.
func textInput(name, content string) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// expandWebURL fetches a URL and yields it as a countable input. HTML is
// converted to markdown first so the counts cover the page text rather
// than its markup; other text content is counted as-is. With traversal
// enabled, anchors are followed breadth-first down to maxDepth, with a
// visited set guarding against loops. Only the root fetch can fail the
// argument; broken links below it are warnings.
func expandWebURL(startURL string, traverse bool, maxDepth int) ([]Input, error) {
	if !traverse {
		maxDepth = 0
	}
	visited := make(map[string]bool)
	inputs, err := fetchWebInputs(startURL, 0, maxDepth, visited)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no countable content at %s", startURL)
	}
	return inputs, nil
}

func fetchWebInputs(pageURL string, depth, maxDepth int, visited map[string]bool) ([]Input, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", pageURL, err)
	}
	parsed.Fragment = ""
	cleanURL := parsed.String()

	if depth > maxDepth || visited[cleanURL] {
		return nil, nil
	}
	visited[cleanURL] = true

	res, err := http.Get(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", cleanURL, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", cleanURL, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleanURL, err)
	}

	contentType := strings.ToLower(res.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		// Non-HTML text (raw files, plain-text endpoints) counts as-is.
		return []Input{textInput(cleanURL, string(body))}, nil
	}

	var inputs []Input
	text, convErr := htmlToText(string(body))
	if convErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not convert %s to text: %v\n", cleanURL, convErr)
	} else {
		inputs = append(inputs, textInput(cleanURL, text))
	}

	if depth < maxDepth {
		for _, link := range extractLinks(string(body), parsed) {
			linked, linkErr := fetchWebInputs(link, depth+1, maxDepth, visited)
			if linkErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", linkErr)
				continue
			}
			inputs = append(inputs, linked...)
		}
	}
	return inputs, nil
}

// htmlToText converts an HTML document to markdown.
func htmlToText(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(html)
}

// extractLinks pulls the followable anchor targets out of a page, resolved
// against the page's own URL. Fragment-only, mailto and javascript links
// are dropped, as is anything that is not http(s).
func extractLinks(html string, base *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse HTML from %s: %v\n", base, err)
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		links = append(links, resolved.String())
	})
	return links
}
