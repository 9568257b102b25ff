// Package metrics exposes Prometheus counters plus the small ops HTTP
// surface (/metrics and /healthz) used by the hosting platform.
package metrics

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Inbound messages and callbacks handled, by outcome",
		},
		[]string{"status"},
	)
	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_reminders_sent_total",
			Help: "Reminder messages delivered, by kind",
		},
		[]string{"kind"},
	)
)

// Init registers the metrics. Call this from main.go
func Init() {
	prometheus.MustRegister(MessagesProcessed)
	prometheus.MustRegister(RemindersSent)
}

// Serve runs the ops endpoint in the background.
func Serve(addr string) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	go func() {
		if err := http.ListenAndServe(addr, r); err != nil {
			log.Println("ops server:", err)
		}
	}()
}
