package shared

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterOperationalRoutes mounts "/", "/healthz" and "/readyz" on router.
func RegisterOperationalRoutes(router *mux.Router) {
	router.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API is running"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/healthz", statusOK).Methods(http.MethodGet)
	router.HandleFunc("/readyz", statusOK).Methods(http.MethodGet)
}

func statusOK(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
