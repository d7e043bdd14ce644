package middlewarectx

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// AllowedHeaders заголовки, которые браузерный клиент передаёт функциям.
var AllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// CORS обрабатывает preflight-запросы и добавляет CORS-заголовки к ответам.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       AllowedHeaders,
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler
}

// Preflight отвечает на OPTIONS пустым телом и CORS-заголовками без аутентификации.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", strings.Join(AllowedHeaders, ", "))
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusOK)
}
