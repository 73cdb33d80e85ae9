package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Deployer publishes a rendered document for a display name and returns its public URL.
type Deployer interface {
	Deploy(ctx context.Context, fullName string, document []byte) (string, error)
}

type DeployJob struct {
	SessionID   uuid.UUID `json:"session_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// DeployQueue hands deploy jobs to whatever processes them.
type DeployQueue interface {
	Enqueue(ctx context.Context, job DeployJob) error
}
