package handlers

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"net/http"
	"sync"
)

//go:embed openapi.json
var openAPIDocument []byte

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} v{{.Version}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { margin: 0; }
      redoc { display: block; height: 100vh; }
    </style>
  </head>
  <body>
    <redoc spec-url="{{.DocumentURL}}"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

type apiDocs struct {
	etag string
	page []byte
	err  error
}

// loadDocs renders the Redoc page once, titled from the document's info block.
var loadDocs = sync.OnceValue(func() apiDocs {
	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
	}
	if err := json.Unmarshal(openAPIDocument, &doc); err != nil {
		return apiDocs{err: err}
	}
	var page bytes.Buffer
	err := docsPage.Execute(&page, map[string]string{
		"Title":       doc.Info.Title,
		"Version":     doc.Info.Version,
		"DocumentURL": "/v1/openapi.json",
	})
	if err != nil {
		return apiDocs{err: err}
	}
	sum := sha256.Sum256(openAPIDocument)
	return apiDocs{etag: `"` + hex.EncodeToString(sum[:8]) + `"`, page: page.Bytes()}
})

// OpenAPIJSON serves the embedded document. Clients revalidate with the ETag.
func (a *App) OpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	docs := loadDocs()
	w.Header().Set("Cache-Control", "public, max-age=300")
	if docs.etag != "" {
		w.Header().Set("ETag", docs.etag)
		if r.Header.Get("If-None-Match") == docs.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	docs := loadDocs()
	if docs.err != nil {
		a.fail(w, r, docs.err, "failed to render docs")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(docs.page)
}
