package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/gate"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/client/services"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/dmitrijs2005/appgallery/internal/logging"
	"github.com/dmitrijs2005/appgallery/internal/web/auth"
	"github.com/dmitrijs2005/appgallery/internal/web/render"
	"github.com/dmitrijs2005/appgallery/internal/web/submit"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	registerCookie = "gallery_register"
	editCookie     = "gallery_edit"

	// Multipart bodies above this size are rejected before parsing. Extra
	// files beyond common.MaxImages still have to fit.
	maxUploadBytes = 64 << 20

	// A claimed submission token outlives any request by a wide margin.
	submitTTL = 30 * time.Minute
)

var errMissingFormToken = fmt.Errorf("%w: the form has expired, please reload the page", common.ErrValidation)

// Options configures a Handler.
type Options struct {
	Gallery      *services.Gallery
	CreationGate *gate.Gate
	Tokens       submit.TokenStore
	Secret       []byte
	UnlockTTL    time.Duration
	Logger       logging.Logger
}

type Handler struct {
	gallery   *services.Gallery
	creation  *gate.Gate
	tokens    submit.TokenStore
	secret    []byte
	unlockTTL time.Duration
	tmpl      *template.Template
	log       logging.Logger
}

func NewHandler(o Options) (*Handler, error) {
	if o.Gallery == nil || o.CreationGate == nil || o.Tokens == nil {
		return nil, errors.New("web: gallery, creation gate and token store are required")
	}
	if len(o.Secret) == 0 {
		return nil, errors.New("web: token secret is required")
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}

	tmpl, err := parseTemplates(render.NewMarkdown())
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Handler{
		gallery:   o.Gallery,
		creation:  o.CreationGate,
		tokens:    o.Tokens,
		secret:    o.Secret,
		unlockTTL: o.UnlockTTL,
		tmpl:      tmpl,
		log:       o.Logger.With("module", "web_handler"),
	}, nil
}

// ---- browsing ----

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gallery.Load(r.Context())
	h.renderGallery(w, r, http.StatusOK, entries, err, "")
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.renderDetail(w, r, http.StatusOK, entry, "", "")
}

// ---- registration ----

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if !h.unlocked(r, registerCookie, auth.ScopeRegister) {
		h.renderRegisterGate(w, r, http.StatusOK, "")
		return
	}
	h.renderRegister(w, r, http.StatusOK, models.Fields{}, "")
}

func (h *Handler) RegisterUnlock(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.creation.Check(r.Context(), r.PostFormValue("password")); !ok {
		h.renderRegisterGate(w, r, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	if err := h.setUnlockCookie(w, r, registerCookie, auth.ScopeRegister); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

func (h *Handler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.unlocked(r, registerCookie, auth.ScopeRegister) {
		h.renderRegisterGate(w, r, http.StatusUnauthorized, services.UserMessage(services.ActionRegister, services.ErrLocked))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, models.Fields{}, "The upload could not be read.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fields := formFields(r)

	token := r.FormValue("token")
	if err := h.claim(ctx, token); err != nil {
		h.renderRegister(w, r, statusFor(err), fields, services.UserMessage(services.ActionRegister, err))
		return
	}

	imgs, err := readUploads(r.MultipartForm.File["images"])
	if err == nil {
		var msg string
		msg, err = h.gallery.NewRegistration(nil).SubmitImages(ctx, fields, r.FormValue("password"), imgs)
		if err == nil {
			h.renderLatest(w, r, services.SuccessMessage(services.ActionRegister, msg))
			return
		}
	}

	h.release(ctx, token)
	h.renderRegister(w, r, statusFor(err), fields, services.UserMessage(services.ActionRegister, err))
}

// readUploads loads the first common.MaxImages files; the rest are ignored.
func readUploads(files []*multipart.FileHeader) ([]images.Image, error) {
	files = images.Select(files)
	out := make([]images.Image, 0, len(files))
	for _, fh := range files {
		img, err := readUpload(fh)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrValidation, fh.Filename, err)
		}
		out = append(out, img)
	}
	return out, nil
}

func readUpload(fh *multipart.FileHeader) (images.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return images.Image{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, images.DefaultMaxBytes+1))
	if err != nil {
		return images.Image{}, err
	}
	if len(data) > images.DefaultMaxBytes {
		return images.Image{}, errors.New("file is too large")
	}

	typ, err := images.DetectType(fh.Filename, data)
	if err != nil {
		return images.Image{}, err
	}
	return images.Image{Name: fh.Filename, Type: typ, Data: data}, nil
}

// ---- edit ----

func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.unlocked(r, editCookie, auth.EditScope(entry.ID)) {
		h.renderEditGate(w, r, http.StatusOK, entry, "")
		return
	}
	h.renderEdit(w, r, http.StatusOK, entry, entry.Fields(), "")
}

func (h *Handler) EditUnlock(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.gallery.NewEdit(entry).Unlock(r.Context(), r.PostFormValue("password")) {
		h.renderEditGate(w, r, http.StatusUnauthorized, entry, services.UserMessage(services.ActionVerify, gate.ErrRejected))
		return
	}
	if err := h.setUnlockCookie(w, r, editCookie, auth.EditScope(entry.ID)); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, entryPath(entry.ID)+"/edit", http.StatusSeeOther)
}

func (h *Handler) EditSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.unlocked(r, editCookie, auth.EditScope(entry.ID)) {
		h.renderEditGate(w, r, http.StatusUnauthorized, entry, services.UserMessage(services.ActionUpdate, services.ErrLocked))
		return
	}

	fields := formFields(r)
	token := r.PostFormValue("token")
	if err := h.claim(ctx, token); err != nil {
		h.renderEdit(w, r, statusFor(err), entry, fields, services.UserMessage(services.ActionUpdate, err))
		return
	}

	ed := h.gallery.NewEdit(entry)
	ed.Grant()
	msg, err := ed.Submit(ctx, fields)
	if err != nil {
		h.release(ctx, token)
		h.renderEdit(w, r, statusFor(err), entry, fields, services.UserMessage(services.ActionUpdate, err))
		return
	}

	notice := services.SuccessMessage(services.ActionUpdate, msg)
	entries, loadErr := h.gallery.Snapshot()
	if updated, err := services.FindEntry(entries, entry.ID); err == nil {
		h.renderDetail(w, r, http.StatusOK, updated, notice, "")
		return
	}
	h.renderGallery(w, r, http.StatusOK, entries, loadErr, notice)
}

// ---- delete ----

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry, ok := h.lookup(w, r)
	if !ok {
		return
	}

	token := r.PostFormValue("token")
	if err := h.claim(ctx, token); err != nil {
		h.renderDetail(w, r, statusFor(err), entry, "", services.UserMessage(services.ActionDelete, err))
		return
	}

	d := h.gallery.NewDelete(entry)
	pw, _ := d.Gate().Check(ctx, r.PostFormValue("password"))
	msg, err := d.Submit(ctx, pw)
	if err != nil {
		h.release(ctx, token)
		h.renderDetail(w, r, statusFor(err), entry, "", services.UserMessage(services.ActionDelete, err))
		return
	}
	h.renderLatest(w, r, services.SuccessMessage(services.ActionDelete, msg))
}

// ---- helpers ----

// lookup resolves the {id} route parameter against a fresh listing and
// answers 404 itself when the entry is not there.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Entry, bool) {
	entries, _ := h.gallery.Load(r.Context())

	entry, err := services.FindEntry(entries, chi.URLParam(r, "id"))
	if err != nil {
		h.render(w, r, http.StatusNotFound, "gallery", page{
			Title:   "Not found",
			Error:   "App not found.",
			Entries: entries,
		})
		return models.Entry{}, false
	}
	return entry, true
}

func (h *Handler) claim(ctx context.Context, token string) error {
	if token == "" {
		return errMissingFormToken
	}
	err := h.tokens.Claim(ctx, token, submitTTL)
	if errors.Is(err, submit.ErrAlreadyClaimed) {
		return services.ErrSubmissionInProgress
	}
	if err != nil {
		h.log.Error(ctx, "claiming submission token", "error", err)
		return fmt.Errorf("%w: %w", client.ErrUnavailable, err)
	}
	return nil
}

func (h *Handler) release(ctx context.Context, token string) {
	if err := h.tokens.Release(ctx, token); err != nil {
		h.log.Warn(ctx, "releasing submission token", "error", err)
	}
}

func (h *Handler) unlocked(r *http.Request, cookie, scope string) bool {
	c, err := r.Cookie(cookie)
	if err != nil {
		return false
	}
	return auth.HasScope(c.Value, h.secret, scope)
}

func (h *Handler) setUnlockCookie(w http.ResponseWriter, r *http.Request, name, scope string) error {
	tok, err := auth.GenerateToken(scope, h.secret, h.unlockTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(h.unlockTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func formFields(r *http.Request) models.Fields {
	return models.Fields{
		Author:      r.FormValue("author"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		URL:         r.FormValue("url"),
	}
}

// statusFor maps a workflow error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrRemoteFailure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func entryPath(id string) string {
	return "/apps/" + url.PathEscape(id)
}

// ---- rendering ----

func (h *Handler) renderGallery(w http.ResponseWriter, r *http.Request, status int, entries []models.Entry, loadErr error, notice string) {
	h.render(w, r, status, "gallery", page{
		Title:   "Gallery",
		Error:   services.UserMessage(services.ActionList, loadErr),
		Notice:  notice,
		Entries: entries,
	})
}

// renderLatest shows the gallery as refreshed after a successful mutation.
func (h *Handler) renderLatest(w http.ResponseWriter, r *http.Request, notice string) {
	entries, err := h.gallery.Snapshot()
	h.renderGallery(w, r, http.StatusOK, entries, err, notice)
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, status int, e models.Entry, notice, errMsg string) {
	h.render(w, r, status, "detail", page{
		Title:  e.Name,
		Error:  errMsg,
		Notice: notice,
		Entry:  &e,
		Token:  uuid.NewString(),
	})
}

func (h *Handler) renderRegisterGate(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	h.render(w, r, status, "gate", page{
		Title:  "Creation password",
		Error:  errMsg,
		Action: "/register/unlock",
	})
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, status int, f models.Fields, errMsg string) {
	h.render(w, r, status, "register", page{
		Title:     "Register an app",
		Error:     errMsg,
		Form:      f,
		Token:     uuid.NewString(),
		MaxImages: common.MaxImages,
	})
}

func (h *Handler) renderEditGate(w http.ResponseWriter, r *http.Request, status int, e models.Entry, errMsg string) {
	h.render(w, r, status, "gate", page{
		Title:  "Owner password for " + e.Name,
		Error:  errMsg,
		Entry:  &e,
		Action: entryPath(e.ID) + "/unlock",
	})
}

func (h *Handler) renderEdit(w http.ResponseWriter, r *http.Request, status int, e models.Entry, f models.Fields, errMsg string) {
	h.render(w, r, status, "edit", page{
		Title: "Edit " + e.Name,
		Error: errMsg,
		Entry: &e,
		Form:  f,
		Token: uuid.NewString(),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		h.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error(r.Context(), "rendering page", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
