package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
)

// Client is the users API as the console consumes it.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	ListUsers(ctx context.Context, params url.Values) (models.UserPage, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error)
	SetStatus(ctx context.Context, id int64, status models.Status) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
