package entities

import (
	"encoding/json"
	"time"
)

// Endpoint names an upstream data source
type Endpoint string

const (
	EndpointPositions       Endpoint = "/positions"
	EndpointClosedPositions Endpoint = "/closed-positions"
	EndpointActivity        Endpoint = "/activity"
	EndpointLeaderboard     Endpoint = "/v1/leaderboard"
	EndpointTraded          Endpoint = "/traded"
	EndpointPublicProfile   Endpoint = "/public-profile"
)

// FetchStatus tags the outcome of one upstream request
type FetchStatus string

const (
	// FetchOK means the payload decoded into the expected shape and is non-empty
	FetchOK FetchStatus = "ok"
	// FetchEmpty means the payload was null or an empty array
	FetchEmpty FetchStatus = "empty"
	// FetchMalformed means the request succeeded but the payload had the wrong shape
	FetchMalformed FetchStatus = "malformed"
	// FetchFailed means a transport error or a non-2xx response
	FetchFailed FetchStatus = "failed"
)

// FetchResult carries the outcome of one upstream request. Data is only
// meaningful when Status is FetchOK.
type FetchResult[T any] struct {
	Endpoint  Endpoint
	Status    FetchStatus
	Data      T
	Raw       json.RawMessage
	Err       error
	FetchedAt time.Time
}

// OK reports whether the result holds usable data
func (r FetchResult[T]) OK() bool {
	return r.Status == FetchOK
}

// Failed builds a FetchFailed result
func Failed[T any](endpoint Endpoint, err error) FetchResult[T] {
	return FetchResult[T]{
		Endpoint:  endpoint,
		Status:    FetchFailed,
		Err:       err,
		FetchedAt: time.Now().UTC(),
	}
}
