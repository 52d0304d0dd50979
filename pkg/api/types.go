package api

import (
	"time"

	"github.com/rubiojr/catalogue/pkg/bucket"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type BucketsResponse struct {
	Buckets []bucket.Bucket `json:"buckets"`
	Count   int             `json:"count"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
