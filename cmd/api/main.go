package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/nateekarni/dsu-intensive-global/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server stopped: %s", err)
	}
}
