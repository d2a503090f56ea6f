// Package store is the REST client for the backing data store (PostgREST
// dialect). The store owns persistence and row-level authorization; this
// package never re-implements either, it only chooses which credential a
// query runs under.
package store

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated means the store rejected the request credential.
	ErrUnauthenticated = errors.New("store: credential rejected")
	// ErrNotOwned means the caller's row-level policy returned no matching
	// device row: either the device belongs to someone else or it does not
	// exist. The two are indistinguishable under the caller's credential.
	ErrNotOwned = errors.New("store: device not visible to caller")
	// ErrNotFound means a row that was asked for does not exist.
	ErrNotFound = errors.New("store: row not found")
)

// Capability is one credential a store query runs under. Every operation
// takes its capability explicitly so the single privilege escalation point
// per request stays visible at the call site.
type Capability struct {
	apiKey string
	bearer string
}

// Store talks to the backing store over its REST endpoint.
type Store struct {
	http       *resty.Client
	anonKey    string
	serviceKey string
	logger     *zap.Logger
}

// New creates a store client for the given base URL.
func New(baseURL, anonKey, serviceKey string, logger *zap.Logger) *Store {
	client := resty.New().
		SetBaseURL(baseURL + "/rest/v1").
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Store{
		http:       client,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		logger:     logger,
	}
}

// Caller returns the request-scoped capability: the anonymous API key plus
// the caller's own bearer token. Row-level policy decides what it can see.
func (s *Store) Caller(bearer string) Capability {
	return Capability{apiKey: s.anonKey, bearer: bearer}
}

// Service returns the privileged capability. Use only after the ownership
// gate has already authorized the caller for the target device.
func (s *Store) Service() Capability {
	return Capability{apiKey: s.serviceKey, bearer: s.serviceKey}
}

func (s *Store) request(as Capability) *resty.Request {
	return s.http.R().
		SetHeader("apikey", as.apiKey).
		SetHeader("Authorization", "Bearer "+as.bearer)
}

// checkResponse maps store-level HTTP failures onto the package errors.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("store request: %w", err)
	}
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return ErrUnauthenticated
	case resp.IsError():
		return fmt.Errorf("store returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func eq(value string) string { return "eq." + value }
