// Command pushstub is a local stand-in for the chat push gateway.
// It accepts every push and fails a share of them so retries can be observed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
	flag "github.com/spf13/pflag"

	"savingsdesk/internal/app/logger"
	mw "savingsdesk/internal/app/middleware"
	"savingsdesk/pkg/push"
)

func main() {
	listen := flag.StringP("listen", "a", "127.0.0.1:8090", "listen address")
	failRate := flag.Float32P("fail-rate", "f", 0.2, "share of pushes answered with 500")
	flag.Parse()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-stop
		cancel()
	}()

	l := logger.New(true, true)

	if err := runServer(ctx, *listen, &gateway{failRate: *failRate}, l); err != nil {
		l.Fatal().Err(err).Msg("Server run failed")
	}
}

func runServer(ctx context.Context, listenAddr string, g *gateway, l logger.Logger) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(l))
	r.Post("/api/push", g.Push)

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: r,
	}

	go func() {
		l.Info().Str("listen_address", listenAddr).Msg("Listening incoming connections")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("")
		}
	}()

	<-ctx.Done()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

type gateway struct {
	failRate float32
}

func (g *gateway) Push(w http.ResponseWriter, r *http.Request) {
	l := logger.Get(r.Context(), "PushStub")

	in := &push.SendRequest{}
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		l.Warn().Err(err).Msg("Bad push payload")
		writeJSON(w, &push.SendResponse{Error: "invalid payload"}, http.StatusBadRequest)
		return
	}

	if rand.Float32() < g.failRate {
		http.Error(w, "fail", http.StatusInternalServerError)
		return
	}

	l.Info().
		Str("event_id", in.EventID).
		Str("platform", in.Platform).
		Str("type", in.Type).
		Msg("Push accepted")

	writeJSON(w, &push.SendResponse{Success: true, MessageID: xid.New().String()}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
