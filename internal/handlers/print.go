package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/printdoc"
	"github.com/worksheet-lab/ruiji/internal/sections"
)

// HandleSessionPrint returns a standalone print document for the session's latest result
func (h *Handler) HandleSessionPrint(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	if session.Result == nil {
		h.writeError(w, "No result generated yet", http.StatusNotFound)
		return
	}

	settings, err := h.settingsStore.Load()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	opts, err := printOptions(r.URL.Query(), settings.StudentName, settings.InstructorName, "")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writePrintDocument(w, session.Result.Sections, opts)
}

// HandleSheetPrint returns a print document for a saved sheet
func (h *Handler) HandleSheetPrint(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.sheetStore.Get(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err.Error(), h.storeErrorStatus(err))
		return
	}

	opts, err := printOptions(r.URL.Query(), sheet.StudentName, sheet.InstructorName, sheet.Date)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !r.URL.Query().Has("title") {
		opts.Title = sheet.Title
	}
	h.writePrintDocument(w, sections.Split(sheet.Result), opts)
}

func (h *Handler) writePrintDocument(w http.ResponseWriter, s models.Sections, opts printdoc.Options) {
	doc, err := printdoc.Build(s, opts)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, doc)
}

// printOptions reads the print query parameters. Name and date parameters
// that are absent fall back to the given defaults; present but empty ones
// leave the field blank.
func printOptions(q url.Values, student, instructor, date string) (printdoc.Options, error) {
	selected, err := printdoc.ParseSections(q.Get("sections"))
	if err != nil {
		return printdoc.Options{}, err
	}

	opts := printdoc.Options{
		Title:          q.Get("title"),
		StudentName:    student,
		InstructorName: instructor,
		Date:           date,
		Sections:       selected,
		AutoPrint:      q.Get("autoprint") == "1" || q.Get("autoprint") == "true",
	}
	if q.Has("student") {
		opts.StudentName = q.Get("student")
	}
	if q.Has("instructor") {
		opts.InstructorName = q.Get("instructor")
	}
	if q.Has("date") {
		opts.Date = q.Get("date")
	}
	return opts, nil
}
