package service

import (
	"net/http"
	"strings"

	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/zfmt"
)

type CompileResponse struct {
	Plan algebra.TupleExpr `json:"plan"`
}

type StatusResponse struct {
	Ok           bool `json:"ok"`
	CacheEntries int  `json:"cache_entries"`
	// CompilesPerMinute counts compile requests over the last minute.
	CompilesPerMinute int64 `json:"compiles_per_minute"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

func handleCompile(c *Core, w *ResponseWriter, r *Request) {
	c.rate.Incr(1)
	text, ok := r.BoolFromQuery(w, "text")
	if !ok {
		return
	}
	if strings.HasPrefix(r.Header.Get("Accept"), MediaTypeText) {
		text = true
	}
	qc, err := compiler.Parse(r.Body)
	if err != nil {
		w.Error(invalid(err))
		return
	}
	plan, err := c.compiler.Compile(r.Context(), qc)
	if err != nil {
		w.Error(err)
		return
	}
	if text {
		w.RespondText(http.StatusOK, zfmt.Algebra(plan)+"\n")
		return
	}
	w.Respond(http.StatusOK, CompileResponse{Plan: plan})
}

func handleStatus(c *Core, w *ResponseWriter, r *Request) {
	var n int
	if c.compiler.Cache != nil {
		n = c.compiler.Cache.Len()
	}
	w.Respond(http.StatusOK, StatusResponse{
		Ok:                true,
		CacheEntries:      n,
		CompilesPerMinute: c.rate.Rate(),
	})
}

func handleVersion(c *Core, w *ResponseWriter, r *Request) {
	w.Respond(http.StatusOK, VersionResponse{Version: c.conf.Version})
}
