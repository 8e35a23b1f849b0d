package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/alepar/envexporter/config"
	"github.com/alepar/envexporter/exposition"
)

const usageTemplate = "Prometheus environment sensor exporter.\n" +
	"\n" +
	"Usage: %s\n"

func newHandler(cfg *config.Config, src exposition.Source, renderer *exposition.Renderer, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", rootHandler(cfg.MetricsPath)).Methods(http.MethodGet)
	router.HandleFunc(cfg.MetricsPath, metricsHandler(src, renderer)).Methods(http.MethodGet)
	router.Handle(cfg.TelemetryPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:          log.StandardLogger(),
		EnableOpenMetrics: true,
	})).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	recovery := negroni.NewRecovery()
	recovery.Logger = log.StandardLogger()
	recovery.PrintStack = false

	n := negroni.New(recovery, negroni.HandlerFunc(logRequest))
	n.UseHandler(router)
	return n
}

func rootHandler(metricsPath string) http.HandlerFunc {
	body := fmt.Sprintf(usageTemplate, metricsPath)
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, []byte(body))
	}
}

func metricsHandler(src exposition.Source, renderer *exposition.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := renderer.Render(src)
		writeText(w, status, body)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, []byte("Not found."))
}

func writeText(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", exposition.ContentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Debugf("failed to write response: %s", err)
	}
}

func logRequest(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	next(w, r)

	fields := log.Fields{
		"client": r.RemoteAddr,
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if res, ok := w.(negroni.ResponseWriter); ok {
		fields["status"] = res.Status()
	}
	log.WithFields(fields).Info("request")
}
