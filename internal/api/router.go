package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bestfriendai/SupaSecret-sub011/internal/handlers"
)

// NewRouter builds the HTTP route table for the trends service
func NewRouter(trending *handlers.TrendingHandler, preferences *handlers.PreferencesHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/trending", trending.HandleTrending).Methods("GET")
	r.HandleFunc("/hashtags", trending.HandleHashtags).Methods("GET")
	r.HandleFunc("/search", trending.HandleSearch).Methods("GET")

	r.HandleFunc("/preferences", preferences.HandleGet).Methods("GET")
	r.HandleFunc("/preferences", preferences.HandlePut).Methods("PUT")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
