package resource

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diewo77/backoffice/internal/httpx"
	"github.com/diewo77/backoffice/internal/schema"
)

// RenderFunc renders a named template with the given context mapping.
type RenderFunc func(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error

// DetailFunc replaces the generic detail view for one resource; it receives
// the already-fetched entity.
type DetailFunc func(w http.ResponseWriter, r *http.Request, entity any)

type options struct {
	detail DetailFunc
}

// Option tweaks one resource's generated routes.
type Option func(*options)

// WithDetailOverride installs a resource-specific detail handler in place of
// the generic detail page. The projects resource uses this to show its quote
// collection; everything else keeps the default.
func WithDetailOverride(fn DetailFunc) Option {
	return func(o *options) { o.detail = fn }
}

type handlers[T any] struct {
	desc   schema.Descriptor
	store  Store[T]
	render RenderFunc
	opts   options
}

// Routes builds the machine (JSON) and human (HTML fragment) routers for one
// entity kind; the composition root mounts them under /api/v1/{name} and
// /ui/{name}. All eight resources are structurally identical from this
// factory's point of view, so it is instantiated once per entity type.
func Routes[T any](desc schema.Descriptor, store Store[T], render RenderFunc, opts ...Option) (api chi.Router, web chi.Router) {
	h := &handlers[T]{desc: desc, store: store, render: render}
	for _, o := range opts {
		o(&h.opts)
	}

	api = chi.NewRouter()
	api.Get("/", h.apiList)
	api.Post("/", h.apiCreate)
	api.Get("/{id}", h.apiGet)
	api.Put("/{id}", h.apiUpdate)
	api.Delete("/{id}", h.apiDelete)

	web = chi.NewRouter()
	web.Get("/", h.webList)
	web.Get("/new-row", h.webNewRow)
	web.Post("/", h.webCreate)
	web.Get("/{id}", h.webRow)
	web.Get("/{id}/details", h.webDetails)
	web.Put("/{id}", h.webUpdate)
	web.Delete("/{id}", h.webDelete)
	return api, web
}

// --- machine API ---

func (h *handlers[T]) apiList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *handlers[T]) apiGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *handlers[T]) apiCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeJSONMap(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	item, err := h.store.Create(r.Context(), schema.Coerce(raw, h.desc))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "create_failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *handlers[T]) apiUpdate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeJSONMap(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	item, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), schema.Coerce(raw, h.desc))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found")
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "update_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *handlers[T]) apiDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found")
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- human UI ---

func (h *handlers[T]) webList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.renderHTML(w, r, h.listTemplate(), map[string]any{
		h.desc.Name:   items,
		"active_page": h.desc.Name,
	})
}

func (h *handlers[T]) webNewRow(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, r, h.editTemplate(), map[string]any{h.desc.Singular: new(T)})
}

func (h *handlers[T]) webCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	item, err := h.store.Create(r.Context(), schema.Coerce(formMap(r), h.desc))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.renderHTML(w, r, h.rowTemplate(), map[string]any{h.desc.Singular: item})
}

// webRow serves either the inline edit form or the static display row for one
// entity. The edit form is chosen only when the request comes from the inline
// editing client (HX-Request header) and is not a cancel action.
func (h *handlers[T]) webRow(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	name := h.rowTemplate()
	if r.Header.Get("HX-Request") != "" && r.URL.Query().Get("cancelled") == "" {
		name = h.editTemplate()
	}
	h.renderHTML(w, r, name, map[string]any{h.desc.Singular: item})
}

func (h *handlers[T]) webDetails(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if h.opts.detail != nil {
		h.opts.detail(w, r, item)
		return
	}
	h.renderHTML(w, r, h.detailTemplate(), map[string]any{
		h.desc.Singular: item,
		"active_page":   h.desc.Name,
	})
}

func (h *handlers[T]) webUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	item, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), schema.Coerce(formMap(r), h.desc))
	if err != nil {
		// The UI collapses every update failure, unknown id included, to 400.
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.renderHTML(w, r, h.rowTemplate(), map[string]any{h.desc.Singular: item})
}

func (h *handlers[T]) webDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- helpers ---

func (h *handlers[T]) listTemplate() string   { return h.desc.Name + "/" + h.desc.Name + ".html" }
func (h *handlers[T]) rowTemplate() string    { return h.desc.Name + "/" + h.desc.Name + "_row.html" }
func (h *handlers[T]) editTemplate() string   { return h.desc.Name + "/" + h.desc.Name + "_edit.html" }
func (h *handlers[T]) detailTemplate() string { return h.desc.Name + "/" + h.desc.Name + "_detail.html" }

func (h *handlers[T]) renderHTML(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.render(w, r, name, data); err != nil {
		http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func decodeJSONMap(r *http.Request) (map[string]any, error) {
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// formMap flattens a parsed form to one value per key, the shape the coercion
// layer expects.
func formMap(r *http.Request) map[string]any {
	m := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return m
}
