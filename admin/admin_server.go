// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tangle-network/lrt/health"
	"github.com/tangle-network/lrt/log"
)

var logger = log.WithContext("pkg", "admin")

func logLevelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getLogLevelHandler().ServeHTTP(w, r)
		case http.MethodPost:
			postLogLevelHandler().ServeHTTP(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// HTTPHandler returns the admin API handler.
func HTTPHandler(h *health.Health) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/admin/loglevel", logLevelHandler())
	router.HandleFunc("/admin/health", healthHandler(h))
	router.Handle("/admin/metrics", metricsHandler())
	return handlers.CompressHandler(router)
}

// StartServer starts the admin API server on addr. It returns the base url
// of the served API and a function stopping the server.
func StartServer(addr string, h *health.Health) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           HTTPHandler(h),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}

	var group errgroup.Group
	group.Go(func() error {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	stop := func() {
		srv.Close()
		if err := group.Wait(); err != nil {
			logger.Warn("admin server stopped", "err", err)
		}
	}
	return "http://" + listener.Addr().String() + "/admin", stop, nil
}
