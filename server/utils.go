package server

import (
	"log"
	"net/http"
)

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func writeServerError(logger *log.Logger, w http.ResponseWriter, err error) {
	logger.Println(err.Error())
	writeText(w, http.StatusInternalServerError, "something went wrong")
}
