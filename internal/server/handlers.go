package server

import "net/http"

// HealthHandler returns a simple OK for liveness checks. Device
// reachability is reported through the scrape-success metric instead.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
