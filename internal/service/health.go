package service

import (
	"context"
	"time"

	"github.com/sakif/sweet-memories/internal/repository"
)

// healthPingTimeout bounds the store probe so a hung database cannot hang
// the health endpoint.
const healthPingTimeout = 5 * time.Second

// Health is the health endpoint payload. OK is always true: the call itself
// succeeding is the liveness signal, dependency state is reported beside it.
type Health struct {
	OK                   bool   `json:"ok"`
	Mongo                bool   `json:"mongo"`
	MongoError           string `json:"mongoError,omitempty"`
	CloudinaryConfigured bool   `json:"cloudinaryConfigured"`
}

type HealthService struct {
	store           repository.Pinger
	mediaConfigured bool
}

// NewHealthService takes the store to probe and whether full media
// credentials are present.
func NewHealthService(store repository.Pinger, mediaConfigured bool) *HealthService {
	return &HealthService{store: store, mediaConfigured: mediaConfigured}
}

// Check never returns an error; failures land in Health.MongoError.
func (s *HealthService) Check(ctx context.Context) Health {
	h := Health{OK: true, CloudinaryConfigured: s.mediaConfigured}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		h.MongoError = err.Error()
		return h
	}
	h.Mongo = true
	return h
}
