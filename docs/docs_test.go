package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDocDescribesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}
	if doc.Info.Title != "Signal Desk API" {
		t.Fatalf("unexpected title %q", doc.Info.Title)
	}

	routes := map[string]string{
		"/health":                   "get",
		"/api/assets":               "get",
		"/api/timeframes":           "get",
		"/api/sessions/{id}":        "get",
		"/api/sessions/{id}/events": "post",
		"/api/sessions/{id}/ws":     "get",
	}
	for path, method := range routes {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}
	for _, def := range []string{"session.Snapshot", "handler.eventRequest", "domain.Signal", "domain.Asset"} {
		if _, ok := doc.Definitions[def]; !ok {
			t.Errorf("missing definition %s", def)
		}
	}
}
