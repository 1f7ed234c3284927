package metrics

import (
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudfoundry/disk-alert/pkg/logger"
)

type Server struct {
	listener  net.Listener
	registrar Registrar
}

func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Registrar() Registrar {
	return s.registrar
}

// StartMetricsServer listens and serves the health endpoint HTTP handler on
// a given address. If the server fails to listen the process will exit with
// a status code of 1.
func StartMetricsServer(addr string, log *logger.Logger, registrar Registrar) *Server {
	router := http.NewServeMux()

	router.Handle("/metrics", promhttp.HandlerFor(registrar.Gatherer(), promhttp.HandlerOpts{}))
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	server := http.Server{
		Addr:         addr,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		Handler:      router,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("unable to setup metrics server", err)
	}

	go func() {
		log.Info("metrics server listening", logger.String("addr", listener.Addr().String()))
		server.Serve(listener)
		log.Info("metrics server closing")
	}()

	return &Server{
		listener:  listener,
		registrar: registrar,
	}
}
