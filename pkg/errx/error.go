// Package errx carries an HTTP status and a user-safe message alongside an
// underlying error.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is the user-facing fallback for internal errors.
	SystemErrorMessage = "internal server error"
	// FetchProductsMessage is reported when the product list cannot be read.
	FetchProductsMessage = "Failed to fetch products"
	// FetchProductMessage is reported when a single product cannot be read.
	FetchProductMessage = "Failed to fetch product"
	// NotFoundMessage is reported when a product id does not resolve.
	NotFoundMessage = "Product not found"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Details returns the underlying error text, or "" when there is none.
func (e *AppError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Internal wraps err as a 500 with the given message.
func Internal(err error, message string) *AppError {
	return New(err, http.StatusInternalServerError, message)
}

// NotFound wraps err as a 404 with the product not-found message.
func NotFound(err error) *AppError {
	return New(err, http.StatusNotFound, NotFoundMessage)
}

// BadRequest wraps err as a 400.
func BadRequest(err error, message string) *AppError {
	return New(err, http.StatusBadRequest, message)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an
// AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
