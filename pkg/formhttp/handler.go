package formhttp

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/locale"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// instance is one live form: a session over an in-memory provider that
// renders into a Board. Session calls are serialized by mu.
type instance struct {
	mu       sync.Mutex
	schema   string
	lang     string
	session  *form.Session
	provider *form.MapProvider
	board    *Board
}

// Handler exposes form sessions over HTTP.
type Handler struct {
	forms       map[string]*schema.Form
	catalog     *locale.Catalog
	sessionOpts []form.Option
	onSubmit    SubmitFunc
	logger      *slog.Logger
	sessions    *form.Registry

	mu        sync.RWMutex
	instances map[string]*instance
}

// New creates a Handler serving the given schemas by name.
func New(forms map[string]*schema.Form, opts ...Option) *Handler {
	h := &Handler{
		forms:     forms,
		logger:    logger.Discard(),
		sessions:  form.NewRegistry(),
		instances: make(map[string]*instance),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router returns a chi router with the form routes and request-scoped
// middleware.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	h.Routes(r)
	return r
}

// Routes registers the form routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/forms", h.listForms)
	r.Post("/forms/{schema}", h.createInstance)
	r.Route("/instances/{id}", func(r chi.Router) {
		r.Get("/", h.getInstance)
		r.Delete("/", h.deleteInstance)
		r.Post("/fields/{field}", h.changeField)
		r.Post("/submit", h.submit)
		r.Post("/reset", h.reset)
		r.Post("/messages", h.setMessage)
		r.Get("/stream", h.stream)
	})
}

// Len returns the number of live instances.
func (h *Handler) Len() int {
	return h.sessions.Len()
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.forms))
	for name := range h.forms {
		names = append(names, name)
	}
	slices.Sort(names)
	writeJSON(w, http.StatusOK, map[string]any{"forms": names})
}

func (h *Handler) createInstance(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "schema")
	def, ok := h.forms[name]
	if !ok {
		h.writeError(w, r, ErrSchemaNotFound)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lang := h.language(r)
	inst := &instance{
		schema:   name,
		lang:     lang,
		provider: form.NewMapProvider(values),
		board:    NewBoard(),
	}

	opts := slices.Concat(h.sessionOpts, def.SessionOptions(), []form.Option{
		form.WithControlGate(inst.board),
		form.WithMessageFormatter(h.formatter(lang)),
		form.WithLogger(h.logger.With(logger.Schema(name))),
	})
	s, err := form.New(inst.provider, inst.board, def.Specs(), opts...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	inst.session = s

	h.mu.Lock()
	h.instances[s.ID()] = inst
	h.mu.Unlock()
	h.sessions.Register(s.ID(), s)

	h.logger.InfoContext(r.Context(), "form instance created",
		logger.Session(s.ID()),
		logger.Schema(name),
		slog.String("lang", lang),
	)
	writeJSON(w, http.StatusCreated, inst.view())
}

func (h *Handler) getInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	inst.mu.Lock()
	view := inst.view()
	inst.mu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) deleteInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	h.mu.Lock()
	delete(h.instances, id)
	h.mu.Unlock()
	h.sessions.Remove(id)

	inst.mu.Lock()
	inst.session.Reset()
	inst.mu.Unlock()

	h.logger.InfoContext(r.Context(), "form instance deleted", logger.Session(id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changeField(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	value, err := decodeValue(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if !slices.Contains(inst.session.Fields(), field) {
		h.writeError(w, r, form.ErrUnknownField)
		return
	}

	inst.provider.Set(field, value)
	err = inst.session.FieldChanged(field)
	if err != nil && !validator.IsValidationError(err) {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fieldResult{
		Field:     field,
		State:     inst.session.State(field).State.String(),
		Message:   validator.ExtractValidationErrors(err).Get(field),
		CanSubmit: inst.session.SubmitEnabled(),
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	inst.mu.Lock()
	inst.provider.SetAll(values)
	err = inst.session.SubmitRequested()
	submitted := inst.provider.Values()
	inst.mu.Unlock()

	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if h.onSubmit != nil {
		if err := h.onSubmit(r.Context(), inst.schema, submitted); err != nil {
			h.writeError(w, r, errors.Join(form.ErrVetoed, err))
			return
		}
	}

	h.logger.InfoContext(r.Context(), "form submitted",
		logger.Session(chi.URLParam(r, "id")),
		logger.Schema(inst.schema),
	)
	writeJSON(w, http.StatusOK, map[string]any{"values": submitted})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	inst.mu.Lock()
	inst.session.ResetRequested()
	inst.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setMessage(w http.ResponseWriter, r *http.Request) {
	inst, err := h.instance(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	inst.mu.Lock()
	err = h.sessions.SetMsg(chi.URLParam(r, "id"), req.Field, req.Message)
	inst.mu.Unlock()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) instance(r *http.Request) (*instance, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	inst, ok := h.instances[chi.URLParam(r, "id")]
	if !ok {
		return nil, ErrInstanceNotFound
	}
	return inst, nil
}

// language negotiates the message language from the lang query parameter
// or the Accept-Language header. Without a catalog it is empty.
func (h *Handler) language(r *http.Request) string {
	if h.catalog == nil {
		return ""
	}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return h.catalog.Match(lang)
	}
	return h.catalog.Match(r.Header.Get("Accept-Language"))
}

// formatter translates and then HTML-escapes messages so rendered content
// can be patched into the page as markup next to the configured icons.
func (h *Handler) formatter(lang string) func(string) string {
	translate := func(msg string) string { return msg }
	if h.catalog != nil {
		translate = h.catalog.Formatter(lang)
	}
	return func(msg string) string {
		return templ.EscapeString(translate(msg))
	}
}

func (inst *instance) view() instanceView {
	fields := inst.session.Fields()
	states := make(map[string]string, len(fields))
	for _, f := range fields {
		states[f] = inst.session.State(f).State.String()
	}
	return instanceView{
		ID:       inst.session.ID(),
		Schema:   inst.schema,
		Lang:     inst.lang,
		Fields:   fields,
		States:   states,
		Snapshot: inst.board.Snapshot(),
	}
}
