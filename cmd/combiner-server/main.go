// Command combiner-server provides a REST API for transcript
// consolidation.
//
// Usage:
//
//	combiner-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ulagbulag/string-combiner/api/handlers"
	"github.com/ulagbulag/string-combiner/api/middleware"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	flag.Parse()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/combine", func(r chi.Router) {
			r.Post("/strings", handlers.CombineStringsHandler)
			r.Post("/segments", handlers.CombineSegmentsHandler)
			r.Post("/stats", handlers.CombineStatsHandler)
		})

		r.Route("/alignment", func(r chi.Router) {
			r.Post("/pretty", handlers.PrettyAlignHandler)
		})
	})

	// Home page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Combiner API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>Combiner API</h1>
    <p>A REST API for consolidating overlapping transcript segments.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/combine/strings</code>
        <p>Combine overlapping strings into one consolidated string.</p>
        <pre>{"inputs": ["Hello World", "World!"]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/combine/segments</code>
        <p>Combine a JSON array of interval-tagged segments by text.</p>
        <pre>[{"key": {"t0": {"secs": 0, "nanos": 0}, "t1": {"secs": 2, "nanos": 0}},
  "value": {"kind": "Normal", "text": "Hello World"}}]</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/combine/stats</code>
        <p>Combine strings and report support statistics.</p>
        <pre>{"inputs": ["Hello World", "World!"]}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/pretty</code>
        <p>Render a pairwise alignment as a three-row diff.</p>
        <pre>{"x": "Hello World", "y": "World!", "mode": "local"}</pre>
    </div>
</body>
</html>`))
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	log.Printf("Combiner API server starting on http://%s\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}
