package client

import (
	"context"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
)

// Client is the set of actions offered by the Remote Action Endpoint.
//
// Mutations return the optional message the endpoint attached to a
// successful answer.
type Client interface {
	Close() error
	FetchAll(ctx context.Context) ([]models.Entry, error)
	Register(ctx context.Context, fields models.Fields, password string, images []models.ImagePayload) (string, error)
	Update(ctx context.Context, id string, fields models.Fields) (string, error)
	Delete(ctx context.Context, id string, password string) (string, error)
	VerifyPassword(ctx context.Context, id string, password string) (bool, error)
}
