package nats

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/librarian"
)

func RecommendHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req librarian.RecommendRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("400", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		rec, ok := resp.(*librarian.Recommendation)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(rec)
	}
}

func SearchBooksHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req librarian.SearchBooksRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("400", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		matches, ok := resp.([]librarian.BookMatch)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(&matches)
	}
}

func RefreshIndexHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		ctx := context.Background()
		_, err := endpoint(ctx, nil)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		r.Respond([]byte("OK"))
	}
}

func StatusHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		ctx := context.Background()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		status, ok := resp.(*librarian.IndexStatus)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(status)
	}
}

func GetBookHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		id, err := strconv.Atoi(string(r.Data()))
		if err != nil {
			r.Error("400", "invalid book id", nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, id)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		book, ok := resp.(*librarian.BookRecord)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(book)
	}
}
