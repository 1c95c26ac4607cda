package handler

import (
	"net/http"
	"sync"

	"dinebook/config"
	"dinebook/di"
	"dinebook/shared/logger"
	transport "dinebook/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler serves the API from a serverless function host. The injector runs
// once per instance, not once per request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
