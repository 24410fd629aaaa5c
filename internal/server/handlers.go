package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidPackage, "invalid package name encoding"))
		return
	}
	s.serveTree(w, r, name)
}

func (s *Server) handleScopedTree(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if !strings.HasPrefix(scope, "@") {
		writeError(w, errors.New(errors.ErrCodeInvalidPackage, "scope %q must start with @", scope))
		return
	}
	s.serveTree(w, r, scope+"/"+chi.URLParam(r, "name"))
}

func (s *Server) serveTree(w http.ResponseWriter, r *http.Request, name string) {
	version, err := url.PathUnescape(chi.URLParam(r, "version"))
	if err == nil {
		err = errors.ValidateVersion(version)
	}
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid version"))
		return
	}
	if err := errors.ValidateNpmPackageName(name); err != nil {
		writeError(w, err)
		return
	}

	data, hit, err := s.tree(r.Context(), name, version)
	if err != nil {
		if errors.GetCode(err) == "" {
			s.logger.Error("resolve failed", "package", name, "version", version,
				"request_id", RequestID(r.Context()), "err", err)
		}
		writeError(w, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
	w.Header().Set("ETag", etag)
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// tree returns the serialized tree for name@version from the cache or a
// fresh resolution. Concurrent identical requests share one resolution.
func (s *Server) tree(ctx context.Context, name, version string) ([]byte, bool, error) {
	key := s.runner.Key(name, version)

	v, err, _ := s.flight.Do(key, func() (any, error) {
		// Followers share this call, so it must outlive the leader's request.
		rctx := context.WithoutCancel(ctx)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(rctx, s.timeout)
			defer cancel()
		}
		return s.runner.Resolve(rctx, name, version, false)
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(*pipeline.Result)
	return res.Data, res.CacheHit, nil
}
