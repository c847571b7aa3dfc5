package librarian

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Recommend    endpoint.Endpoint
	SearchBooks  endpoint.Endpoint
	RefreshIndex endpoint.Endpoint
	Status       endpoint.Endpoint
	GetBook      endpoint.Endpoint
}

type RecommendRequest struct {
	Message string `json:"message"`
}

func RecommendEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(RecommendRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Recommend(ctx, req.Message)
	}
}

type SearchBooksRequest struct {
	Query string `json:"query" form:"query"`
	K     int    `json:"k,omitempty" form:"k"`
}

func SearchBooksEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(SearchBooksRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.SearchBooks(ctx, req.Query, req.K)
	}
}

func RefreshIndexEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		err := svc.RefreshIndex(ctx)
		return nil, err
	}
}

func StatusEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.Status(ctx)
	}
}

func GetBookEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		id, ok := request.(int)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.GetBook(ctx, id)
	}
}
