package children

import (
	"context"

	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	"github.com/littleones/daycare-api/common/validation"

	"github.com/pkg/errors"
)

type ChildPayload struct {
	Name       string `json:"name" validate:"present"`
	ParentName string `json:"parent_name" validate:"present"`
	Email      string `json:"email" validate:"present,email_format"`
	Address    string `json:"address" validate:"present"`
}

type Service interface {
	AddChild(ctx context.Context, payload map[string]interface{}) (store.Child, error)
	ListChildren(ctx context.Context) ([]store.Child, error)
}

type ChildService struct {
	Store interface {
		AddChild(ctx context.Context, child store.Child) (store.Child, error)
		ListChildren(ctx context.Context) ([]store.Child, error)
	} `inject:""`
	Validator *validation.Validator `inject:""`
	Logger    *log.Logger           `inject:""`
}

func (c *ChildService) AddChild(ctx context.Context, payload map[string]interface{}) (store.Child, error) {
	request := ChildPayload{}
	if err := c.Validator.Validate(payload, &request); err != nil {
		return store.Child{}, err
	}

	child, err := c.Store.AddChild(ctx, store.Child{
		Name:       request.Name,
		ParentName: request.ParentName,
		Email:      request.Email,
		Address:    request.Address,
	})
	if err != nil {
		return store.Child{}, errors.Wrap(err, "failed to add child")
	}

	c.Logger.Info(ctx, "child created", "id", child.Id)
	return child, nil
}

func (c *ChildService) ListChildren(ctx context.Context) ([]store.Child, error) {
	children, err := c.Store.ListChildren(ctx)
	if err != nil {
		return []store.Child{}, errors.Wrap(err, "failed to list children")
	}
	return children, nil
}
