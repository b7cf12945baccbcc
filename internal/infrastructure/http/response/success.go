package response

import "net/http"

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
