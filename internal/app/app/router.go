package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"savingsdesk/internal/app/handler"
	mw "savingsdesk/internal/app/middleware"
)

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(a.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Heartbeat("/ping"))

	sh := handler.NewSavingsHandler(a.savings)
	th := handler.NewTransactionHandler(a.savings)

	r.Route("/api/admin/savings", func(r chi.Router) {
		r.Use(mw.Auth(a.session))

		r.Get("/", sh.List)

		r.Route("/transactions/{transactionID}", func(r chi.Router) {
			r.Post("/approve", th.Approve)
			r.Post("/reject", th.Reject)
		})

		r.Route("/{savingsID}", func(r chi.Router) {
			r.Get("/", sh.Get)
			r.Put("/", sh.UpdateStatus)
			r.Post("/approve-deposit", sh.ApproveDeposit)
			r.Post("/cancel", sh.Cancel)
			r.Post("/complete", sh.Complete)
			r.Post("/deposit", sh.Deposit)
		})
	})

	return r
}
