package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	serviceName    = "pdf-processing-service"
	serviceVersion = "1.0.0"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(processHandler *ProcessHandler) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": serviceName,
			"version": serviceVersion,
		})
	}).Methods("GET")

	// Root endpoint with service metadata
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "PDF processing service API",
			"service": serviceName,
			"version": serviceVersion,
			"endpoints": map[string]string{
				"health_check": "/health",
				"process_pdf":  "/process-pdf",
			},
		})
	}).Methods("GET")

	// Processing endpoint
	router.HandleFunc("/process-pdf", processHandler.ProcessPDF).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
