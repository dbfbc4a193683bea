// Package ml provides client interfaces for the prediction model server.
package ml

import "errors"

var (
	// ErrModelUnavailable indicates the model server is unreachable or failing
	ErrModelUnavailable = errors.New("model server unavailable")

	// ErrInvalidPrediction indicates the returned probabilities are unusable
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrInvalidResponse indicates a response body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from model server")
)
