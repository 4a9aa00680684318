package users

import (
	"context"

	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	"github.com/littleones/daycare-api/common/validation"

	"github.com/pkg/errors"
)

// UserPayload keeps the historical rules of the users collection: first_name
// must hold an email address.
type UserPayload struct {
	FirstName string `json:"first_name" validate:"present,email_format"`
	LastName  string `json:"last_name" validate:"present"`
}

type Service interface {
	AddUser(ctx context.Context, payload map[string]interface{}) (store.User, error)
	ListUsers(ctx context.Context) ([]store.User, error)
}

type UserService struct {
	Store interface {
		AddUser(ctx context.Context, user store.User) (store.User, error)
		ListUsers(ctx context.Context) ([]store.User, error)
	} `inject:""`
	Validator *validation.Validator `inject:""`
	Logger    *log.Logger           `inject:""`
}

func (u *UserService) AddUser(ctx context.Context, payload map[string]interface{}) (store.User, error) {
	request := UserPayload{}
	if err := u.Validator.Validate(payload, &request); err != nil {
		return store.User{}, err
	}

	user, err := u.Store.AddUser(ctx, store.User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if err != nil {
		return store.User{}, errors.Wrap(err, "failed to add user")
	}

	u.Logger.Info(ctx, "user created", "id", user.Id)
	return user, nil
}

func (u *UserService) ListUsers(ctx context.Context) ([]store.User, error) {
	users, err := u.Store.ListUsers(ctx)
	if err != nil {
		return []store.User{}, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}
