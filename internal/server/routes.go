package server

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/manav03panchal/chronos/internal/account"
	"github.com/manav03panchal/chronos/internal/blob"
	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/parser"
	"github.com/manav03panchal/chronos/internal/storage"
)

// publicNamespace resolves the {namespace} URL parameter. The letter, users
// and attribute records are never served raw.
func publicNamespace(r *http.Request) (model.Namespace, error) {
	ns := model.Namespace(chi.URLParam(r, "namespace"))
	if !ns.Public() {
		return "", errors.NotFound(errors.ErrUnknownNamespace, string(ns))
	}
	return ns, nil
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	ns, err := publicNamespace(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raw, err := s.rt.Store.Read(r.Context(), ns)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, raw)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	ns, err := publicNamespace(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var saved any
	switch ns {
	case model.NSSettings:
		var v model.UserSettings
		if err = s.decode(w, r, &v); err == nil {
			saved, err = s.rt.Planner.UpdateSettings(r.Context(), v)
		}
	case model.NSMilestones:
		var v []model.Milestone
		if err = s.decode(w, r, &v); err == nil {
			saved, err = s.rt.Planner.SaveMilestones(r.Context(), v)
		}
	case model.NSUserProfile:
		// Fields left out of the body keep their stored values.
		var v model.ProfileUpdate
		if err = s.decode(w, r, &v); err == nil {
			saved, err = s.rt.Account.UpdateProfile(r.Context(), v)
		}
	case model.NSLogs:
		saved, err = putTyped[[]model.LogEntry](s, w, r, ns)
	case model.NSDailyTasks:
		saved, err = putTyped[[]model.DailyTask](s, w, r, ns)
	case model.NSDailyHistory:
		saved, err = putTyped[[]model.DailyTaskHistoryEntry](s, w, r, ns)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, saved)
}

// putTyped decodes the body as T so malformed records never reach the store.
func putTyped[T any](s *Server, w http.ResponseWriter, r *http.Request, ns model.Namespace) (T, error) {
	var v T
	if err := s.decode(w, r, &v); err != nil {
		return v, err
	}
	return storage.Put(r.Context(), s.rt.Store, ns, v)
}

func (s *Server) handleLogPage(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.rt.Journal.Page(r.Context(), page, size)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, p)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.NewUserErrorWithField(key, v, key+" must be an integer", "")
	}
	return n, nil
}

func (s *Server) handleSaveLog(w http.ResponseWriter, r *http.Request) {
	var entry model.LogEntry
	if err := s.decode(w, r, &entry); err != nil {
		s.fail(w, r, err)
		return
	}
	saved, err := s.rt.Journal.Save(r.Context(), entry)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, output.Response{Status: "ok", Data: saved})
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.rt.Journal.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, map[string]string{"deleted": id})
}

func (s *Server) handleListDaily(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.rt.Daily.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, tasks)
}

func (s *Server) handleAddDaily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	tasks, err := s.rt.Daily.Add(r.Context(), req.Title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, output.Response{Status: "ok", Data: tasks})
}

func (s *Server) handleToggleDaily(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.rt.Daily.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, tasks)
}

func (s *Server) handleArchiveDaily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	status := model.ArchiveCompleted
	if r.ContentLength != 0 {
		if err := s.decode(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if req.Status != "" {
		parsed, err := model.ParseArchiveStatus(req.Status)
		if err != nil {
			s.fail(w, r, errors.NewUserErrorWithField("status", req.Status, err.Error(),
				"Use 'completed' or 'aborted'"))
			return
		}
		status = parsed
	}

	entry, err := s.rt.Daily.Archive(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, entry)
}

func (s *Server) handleDailyHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.rt.Daily.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, history)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.rt.Daily.DeleteHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, history)
}

func (s *Server) handleGetLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := s.rt.Letters.Get(r.Context(), r.Header.Get("X-Letter-Key"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, output.NewLetterResponse(letter, s.now()))
}

func (s *Server) handleSealLetter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content    string `json:"content"`
		TargetDate string `json:"targetDate"`
		Key        string `json:"key"`
	}
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	target, err := parser.ParseTarget(req.TargetDate, s.now(), s.rt.Config.Location())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	letter, err := s.rt.Letters.Save(r.Context(), req.Content, target, req.Key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.notify(r.Context(), s.rt.Ledger.Success, "Letter sealed until "+target.Format("2006-01-02"))
	ok(w, output.NewLetterResponse(letter, s.now()))
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := s.rt.Attributes.Tick(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, output.AttributesResponse{Attributes: attrs, Named: attrs.Named()})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.rt.Attributes.Analytics(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, a)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	m, err := s.rt.Planner.Metrics(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, m)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	history, err := s.rt.Ledger.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, history)
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.Ledger.Clear(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	ok(w, []model.Notification{})
}

func (s *Server) handlePutBlob(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.bodyLimit()))
	if err != nil {
		s.fail(w, r, errors.NewUserError("Upload is too large", "Keep attachments under the record size limit"))
		return
	}
	if len(data) == 0 {
		s.fail(w, r, errors.NewUserError("Upload is empty", "Send the attachment bytes as the request body"))
		return
	}
	uri, err := s.rt.Blobs.Put(r.Context(), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, output.Response{Status: "ok", Data: map[string]string{"uri": uri}})
}

func (s *Server) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, found, err := s.rt.Blobs.Get(r.Context(), blob.URI(id))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		s.fail(w, r, errors.NotFound(errors.ErrBlobNotFound, id))
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req account.Registration
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	profile, err := s.rt.Account.Register(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.notify(r.Context(), s.rt.Ledger.Success, "Identity registered: "+profile.Name)
	writeJSON(w, http.StatusCreated, output.Response{Status: "ok", Data: profile})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req account.Credentials
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	profile, err := s.rt.Account.Login(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.notify(r.Context(), s.rt.Ledger.Success, "Welcome back, "+profile.Name)
	ok(w, profile)
}

// notify records a ledger message. A failure to persist it never fails the
// request that triggered it.
func (s *Server) notify(ctx context.Context, send func(context.Context, string) error, message string) {
	if err := send(ctx, message); err != nil {
		logging.WarnContext(ctx, "notification not persisted", logging.KeyError, err)
	}
}
