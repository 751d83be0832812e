// Package main provides the entry point for the type service.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/letmehues/flink/pkg/config"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/handlers"
)

func newRouter(sessionMgr *session.Manager) *chi.Mux {
	sessionHandler := handlers.NewSessionHandler(sessionMgr)
	convertHandler := handlers.NewConvertHandler(sessionMgr)
	schemaHandler := handlers.NewSchemaHandler(sessionMgr)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Post("/v1/sessions", sessionHandler.Create)
	r.Get("/v1/sessions", sessionHandler.List)
	r.Delete("/v1/sessions/{handle}", sessionHandler.Close)

	r.Post("/v1/types/convert", convertHandler.Convert)
	r.Post("/v1/types/reverse", convertHandler.Reverse)
	r.Post("/v1/types/common", convertHandler.Common)

	r.Post("/v1/schemas/derive", schemaHandler.Derive)

	return r
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sessionMgr := session.NewManager(config.DefaultSessionTimeout)
	r := newRouter(sessionMgr)

	log.Printf("Type service listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
