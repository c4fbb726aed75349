package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"neighborhood_insights/platform/logger"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="result results_links">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%%3A%%2F%%2Fwww.cambridgema.gov%%2F&amp;rut=abc">City of <b>Cambridge</b>, MA</a>
  </h2>
  <a class="result__snippet" href="#">Official website of the City of
     Cambridge, Massachusetts.</a>
</div>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="https://en.wikipedia.org/wiki/Cambridge,_Massachusetts">Cambridge, Massachusetts - Wikipedia</a></h2>
  <div class="result__snippet">Cambridge is a city in the Greater Boston area.</div>
</div>
%s
</body></html>`

func filler(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, `<div class="result"><a class="result__a" href="https://example.com/%d">Result %d</a><a class="result__snippet">Snippet %d</a></div>`, i, i, i)
	}
	return b.String()
}

func TestParseResults(t *testing.T) {
	results, err := ParseResults(strings.NewReader(fmt.Sprintf(resultsPage, "")), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Title != "City of Cambridge, MA" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.URL != "https://www.cambridgema.gov/" {
		t.Fatalf("expected redirect to be unwrapped, got %q", first.URL)
	}
	if first.Snippet != "Official website of the City of Cambridge, Massachusetts." {
		t.Fatalf("unexpected snippet %q", first.Snippet)
	}
	if results[1].Snippet != "Cambridge is a city in the Greater Boston area." {
		t.Fatalf("unexpected second snippet %q", results[1].Snippet)
	}
}

func TestParseResultsCapsAtLimit(t *testing.T) {
	results, err := ParseResults(strings.NewReader(fmt.Sprintf(resultsPage, filler(10))), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if results[4].Title != "Result 2" || results[4].Snippet != "Snippet 2" {
		t.Fatalf("unexpected fifth result %+v", results[4])
	}
}

func TestWebSearcherSendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "best parks in Cambridge" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a user agent")
		}
		_, _ = fmt.Fprintf(w, resultsPage, "")
	}))
	defer srv.Close()

	results, err := NewWebSearcher(srv.URL, time.Second, logger.Discard()).Search(context.Background(), "best parks in Cambridge")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestWebSearcherNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewWebSearcher(srv.URL, time.Second, logger.Discard()).Search(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for 403")
	}
}
