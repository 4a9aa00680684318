package staff

import (
	"context"
	"net/http"

	"github.com/littleones/daycare-api/api/shared"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
)

type HandlerFactory struct {
	Service Service `inject:""`
}

func (h *HandlerFactory) Add(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeAddEndpoint(h.Service),
		decodeAddStaffRequest,
		shared.EncodeResponse201,
		opts...,
	)
}

func (h *HandlerFactory) List(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeListEndpoint(h.Service),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

func makeAddEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(map[string]interface{})
		member, err := svc.AddStaff(ctx, req)
		if err != nil {
			return nil, err
		}
		return member, nil
	}
}

func makeListEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		staff, err := svc.ListStaff(ctx)
		if err != nil {
			return nil, err
		}
		return staff, nil
	}
}

func decodeAddStaffRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return shared.DecodeJSONObject(r)
}

func ignorePayload(_ context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	shared.EncodeCommonError(err, w)
}
