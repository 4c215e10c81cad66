package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const unixSocketPrefix = "unix://"

type Api struct {
	listenAddr string
	router     *mux.Router
	srv        *http.Server
}

// NewApi creates the service with all routes registered. listenAddr is either
// a TCP address (":8000") or a unix socket ("unix:///run/ai-alpha.sock").
func NewApi(listenAddr string) *Api {
	api := &Api{
		listenAddr: listenAddr,
		router:     mux.NewRouter(),
	}
	api.registerRoutes()
	api.srv = &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api
}

func (api *Api) RegisterHandler(router *mux.Router, path string, methods []string, handler func(http.ResponseWriter, *http.Request)) {
	router.
		Path(path).
		HandlerFunc(handler).
		Methods(methods...)
}

// Handler returns the complete handler chain: request logging, panic
// recovery and the cross-origin policy around the router.
func (api *Api) Handler() http.Handler {
	return logRequests(recoverPanics(corsPolicy(api.router)))
}

func (api *Api) Start() error {
	ln, err := api.listen()
	if err != nil {
		return err
	}
	return api.Serve(ln)
}

// Serve answers requests on ln until Shutdown is called.
func (api *Api) Serve(ln net.Listener) error {
	log.Infof("ai-alpha api listens on %s", ln.Addr().String())
	if err := api.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (api *Api) Shutdown(ctx context.Context) error {
	log.Info("shutting down ai-alpha api")
	return api.srv.Shutdown(ctx)
}

func (api *Api) listen() (net.Listener, error) {
	if !strings.HasPrefix(api.listenAddr, unixSocketPrefix) {
		ln, err := net.Listen("tcp", api.listenAddr)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to listen on %s", api.listenAddr)
		}
		return ln, nil
	}

	return listenOnUnixSocket(strings.TrimPrefix(api.listenAddr, unixSocketPrefix))
}

func listenOnUnixSocket(socketFile string) (net.Listener, error) {
	socketDir := path.Dir(socketFile)
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to prepare folder for socket-file")
	}
	ln, err := net.Listen("unix", socketFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on socket %s", socketFile)
	}
	return ln, nil
}
