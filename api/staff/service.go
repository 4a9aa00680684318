package staff

import (
	"context"

	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	"github.com/littleones/daycare-api/common/validation"

	"github.com/pkg/errors"
)

type StaffPayload struct {
	Name    string `json:"name" validate:"present"`
	Email   string `json:"email" validate:"present,email_format"`
	Address string `json:"address" validate:"present"`
}

type Service interface {
	AddStaff(ctx context.Context, payload map[string]interface{}) (store.Staff, error)
	ListStaff(ctx context.Context) ([]store.Staff, error)
}

type StaffService struct {
	Store interface {
		AddStaff(ctx context.Context, staff store.Staff) (store.Staff, error)
		ListStaff(ctx context.Context) ([]store.Staff, error)
	} `inject:""`
	Validator *validation.Validator `inject:""`
	Logger    *log.Logger           `inject:""`
}

func (s *StaffService) AddStaff(ctx context.Context, payload map[string]interface{}) (store.Staff, error) {
	request := StaffPayload{}
	if err := s.Validator.Validate(payload, &request); err != nil {
		return store.Staff{}, err
	}

	member, err := s.Store.AddStaff(ctx, store.Staff{
		Name:    request.Name,
		Email:   request.Email,
		Address: request.Address,
	})
	if err != nil {
		return store.Staff{}, errors.Wrap(err, "failed to add staff")
	}

	s.Logger.Info(ctx, "staff created", "id", member.Id)
	return member, nil
}

func (s *StaffService) ListStaff(ctx context.Context) ([]store.Staff, error) {
	staff, err := s.Store.ListStaff(ctx)
	if err != nil {
		return []store.Staff{}, errors.Wrap(err, "failed to list staff")
	}
	return staff, nil
}
