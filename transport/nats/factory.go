package nats

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/librarian"
)

func MakeEndpoints(nc *nats.Conn, prefix string) *librarian.EndpointSet {
	return &librarian.EndpointSet{
		Recommend:    RecommendEndpoint(nc, prefix+".recommend"),
		SearchBooks:  SearchBooksEndpoint(nc, prefix+".search_books"),
		RefreshIndex: RefreshIndexEndpoint(nc, prefix+".refresh_index"),
		Status:       StatusEndpoint(nc, prefix+".status"),
		GetBook:      GetBookEndpoint(nc, prefix+".get_book"),
	}
}

func RecommendEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(librarian.RecommendRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := nc.Request(topic, data, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var rec librarian.Recommendation
		if err := json.Unmarshal(resp.Data, &rec); err != nil {
			return nil, err
		}

		return &rec, nil
	}
}

func SearchBooksEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(librarian.SearchBooksRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := nc.Request(topic, data, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var matches []librarian.BookMatch
		if err := json.Unmarshal(resp.Data, &matches); err != nil {
			return nil, err
		}

		return matches, nil
	}
}

func RefreshIndexEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := nc.Request(topic, nil, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		return string(resp.Data), nil
	}
}

func StatusEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := nc.Request(topic, nil, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var status librarian.IndexStatus
		if err := json.Unmarshal(resp.Data, &status); err != nil {
			return nil, err
		}

		return &status, nil
	}
}

func GetBookEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		id, ok := request.(int)
		if !ok {
			return nil, errors.New("invalid request")
		}

		resp, err := nc.Request(topic, []byte(strconv.Itoa(id)), nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(resp); err != nil {
			return nil, err
		}

		var book librarian.BookRecord
		if err := json.Unmarshal(resp.Data, &book); err != nil {
			return nil, err
		}

		return &book, nil
	}
}

func Error(msg *nats.Msg) error {
	if msg == nil {
		return errors.New("nil message")
	}

	code := msg.Header.Get(micro.ErrorCodeHeader)
	if code == "" {
		return nil
	}

	description := msg.Header.Get(micro.ErrorHeader)
	if description == "" {
		description = "unknown error"
	}

	return errors.New(code + ":" + description)
}
