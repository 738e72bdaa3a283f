package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWebURL(t *testing.T) {
	assert.True(t, isWebURL("http://example.com"))
	assert.True(t, isWebURL("https://example.com/page"))
	assert.False(t, isWebURL("example.com"))
	assert.False(t, isWebURL("./http-notes.txt"))
}

func TestHTMLToTextStripsMarkup(t *testing.T) {
	text, err := htmlToText("<html><body><h1>Title</h1><p>Hello world</p></body></html>")
	require.NoError(t, err)

	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Hello world")
	assert.NotContains(t, text, "<p>")
}

func TestExtractLinks(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/")
	require.NoError(t, err)

	html := `<html><body>
		<a href="/abs">abs</a>
		<a href="rel">rel</a>
		<a href="#frag">frag</a>
		<a href="mailto:x@example.com">mail</a>
		<a href="javascript:void(0)">js</a>
		<a href="https://other.example/page">ext</a>
	</body></html>`

	links := extractLinks(html, base)
	assert.Equal(t, []string{
		"https://example.com/abs",
		"https://example.com/docs/rel",
		"https://other.example/page",
	}, links)
}

func TestExpandWebURLPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "hello\nworld\n")
	}))
	defer srv.Close()

	inputs, err := expandWebURL(srv.URL, false, 1)
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	r, err := inputs[0].Open()
	require.NoError(t, err)
	defer r.Close()

	cnt, err := countReader(r, defaultModes(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt.Lines.Value)
	assert.Equal(t, int64(12), cnt.Chars.Value)
}

func TestExpandWebURLConvertsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><p>just these four words</p></body></html>")
	}))
	defer srv.Close()

	inputs, err := expandWebURL(srv.URL, false, 1)
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	r, err := inputs[0].Open()
	require.NoError(t, err)
	defer r.Close()

	cnt, err := countReader(r, resolveModes(false, true, false, false, false), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cnt.Words.Value)
}

func TestExpandWebURLTraversesLinks(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><p>root page</p><a href="%s/child">child</a></body></html>`, srvURL)
	})
	mux.HandleFunc("/child", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><p>child page</p></body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	inputs, err := expandWebURL(srv.URL, true, 1)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.True(t, strings.HasSuffix(inputs[1].Name, "/child"))
}

func TestExpandWebURLFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := expandWebURL(srv.URL, false, 1)
	assert.Error(t, err)
}
