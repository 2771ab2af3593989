package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/brimdata/serql/compiler/semantic"
	"go.uber.org/zap"
)

const (
	MediaTypeJSON = "application/json"
	MediaTypeText = "text/plain"
)

type Request struct {
	*http.Request
	Logger *zap.Logger
}

func newRequest(w http.ResponseWriter, r *http.Request, c *Core) (*ResponseWriter, *Request) {
	req := &Request{Request: r}
	req.Logger = c.logger.With(zap.String("request_id", req.ID()))
	return &ResponseWriter{
		ResponseWriter: w,
		Logger:         req.Logger,
		request:        req,
	}, req
}

func (r *Request) ID() string {
	return RequestIDFromContext(r.Context())
}

func (r *Request) BoolFromQuery(w *ResponseWriter, param string) (bool, bool) {
	s := r.URL.Query().Get(param)
	if s == "" {
		return false, true
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		w.Error(invalid(errors.New("invalid query param " + strconv.Quote(param) + ": " + err.Error())))
		return false, false
	}
	return b, true
}

type ResponseWriter struct {
	http.ResponseWriter
	Logger  *zap.Logger
	request *Request
	written int32
}

func (w *ResponseWriter) Respond(status int, body interface{}) bool {
	if !atomic.CompareAndSwapInt32(&w.written, 0, 1) {
		return false
	}
	w.Header().Set("Content-Type", MediaTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		w.Logger.Warn("Error writing response", zap.Error(err))
		return false
	}
	return true
}

func (w *ResponseWriter) RespondText(status int, s string) bool {
	if !atomic.CompareAndSwapInt32(&w.written, 0, 1) {
		return false
	}
	w.Header().Set("Content-Type", MediaTypeText+"; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.ResponseWriter.Write([]byte(s)); err != nil {
		w.Logger.Warn("Error writing response", zap.Error(err))
		return false
	}
	return true
}

func (w *ResponseWriter) Error(err error) {
	if err == context.Canceled && err == w.request.Context().Err() {
		w.Logger.Info("Request context canceled")
		return
	}
	status, res := errorResponse(err)
	if status >= 500 {
		w.Logger.Warn("Error", zap.Int("status", status), zap.Error(err))
	}
	w.Respond(status, res)
}

// Error is the body of every non-2xx response.
type Error struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"error"`
}

type invalidError struct{ error }

func (i invalidError) Unwrap() error { return i.error }

func invalid(err error) error {
	return invalidError{err}
}

func errorResponse(err error) (int, *Error) {
	res := &Error{Type: "Error", Message: err.Error()}
	var inv invalidError
	switch {
	case semantic.IsInvariant(err):
		res.Kind = "invariant"
		return http.StatusInternalServerError, res
	case semantic.IsMalformed(err):
		res.Kind = "malformed query"
		return http.StatusBadRequest, res
	case errors.As(err, &inv):
		res.Kind = "invalid operation"
		return http.StatusBadRequest, res
	}
	res.Kind = "system error"
	return http.StatusInternalServerError, res
}
