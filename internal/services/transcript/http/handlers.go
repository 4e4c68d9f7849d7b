// Package http provides http transport for the transcript service
package http

import (
	stdhttp "net/http"
	"strconv"

	"chatscrub/internal/archive"
	phttp "chatscrub/internal/platform/net/http"
	"chatscrub/internal/platform/net/http/bind"
	"chatscrub/internal/services/transcript/domain"
	svc "chatscrub/internal/services/transcript/service"

	perr "chatscrub/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// Register mounts transcript endpoints on the given router
func Register(r chi.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Post("/", h.process)
	r.Get("/{id}", h.get)
	r.Get("/{id}/pages/{page}", h.page)
	r.Get("/{id}/document", h.document)
	r.Delete("/{id}", h.remove)
}

type handlers struct{ svc svc.Service }

// process ingests a document plus options, runs the pipeline and stores the
// session for paging
func (h *handlers) process(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.ProcessInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	sess, err := h.svc.Process(r.Context(), in.Document, in.Options)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondCreated(w, r, sess)
}

func (h *handlers) get(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sess, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		phttp.RespondError(w, r, perr.NotFoundf("unknown transcript session"))
		return
	}
	phttp.RespondOK(w, r, sess)
}

func (h *handlers) page(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sess, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		phttp.RespondError(w, r, perr.NotFoundf("unknown transcript session"))
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		phttp.RespondError(w, r, perr.InvalidArgf("page must be a positive integer"))
		return
	}
	entries := h.svc.Page(sess, page)
	if entries == nil {
		phttp.RespondError(w, r, perr.NotFoundf("page %d of %d", page, sess.Pages))
		return
	}
	phttp.RespondList(w, r, entries, len(sess.Messages), page, sess.PageSize)
}

// document streams the processed (anonymized) archive back as a download
func (h *handlers) document(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sess, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		phttp.RespondError(w, r, perr.NotFoundf("unknown transcript session"))
		return
	}
	b, err := sess.Document.Encode()
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	name := sess.Filename
	if name == "" {
		name = "messages.json"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+archive.OutputName(name)+`"`)
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) remove(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if !h.svc.Delete(chi.URLParam(r, "id")) {
		phttp.RespondError(w, r, perr.NotFoundf("unknown transcript session"))
		return
	}
	phttp.RespondNoContent(w, r)
}
