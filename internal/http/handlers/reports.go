package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"fundtrack/internal/report"
)

// FundraisingReport downloads the roster as CSV or XLSX.
func (a *App) FundraisingReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, err, "invalid format")
		return
	}
	snap, err := a.Loader.Load(r.Context())
	if err != nil {
		a.unavailable(w)
		return
	}
	now := a.now()
	var buf bytes.Buffer
	if err := report.Write(&buf, format, report.BuildRows(now, snap.Interns, snap.Donations)); err != nil {
		a.fail(w, r, err, "failed to render report")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(now, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
