package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

// readDoc returns the registered API description.
var readDoc = swag.ReadDoc

// InfoResponse describes the running API
// swagger:model InfoResponse
type InfoResponse struct {
	// Application name
	// default: gw-social-network
	App string `json:"app"`

	// API version
	// default: 1.0
	APIVersion string `json:"apiVersion"`
}

// NewInfoHandler returns the application name and API version.
// @Summary API info
// @Tags root
// @Produce json
// @Success 200 {object} handlers.InfoResponse
// @Router / [get]
func NewInfoHandler(app, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, InfoResponse{App: app, APIVersion: version})
	}
}

// NewAPIDescriptionHandler serves the OpenAPI document.
// @Summary API description
// @Tags root
// @Produce json
// @Success 200 {object} object
// @Router /swagger.json [get]
func NewAPIDescriptionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := readDoc()
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc))
	}
}

// RegisterRootHandlers mounts the info and API description routes.
func RegisterRootHandlers(r chi.Router, app, version string) {
	r.Get("/", NewInfoHandler(app, version))
	r.Get("/swagger.json", NewAPIDescriptionHandler())
}
