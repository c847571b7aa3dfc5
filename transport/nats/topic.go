package nats

import (
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/librarian"
)

func AddEndpoints(group micro.Group, endpoints librarian.EndpointSet) {
	group.AddEndpoint("recommend", RecommendHandler(endpoints.Recommend))
	group.AddEndpoint("search_books", SearchBooksHandler(endpoints.SearchBooks))
	group.AddEndpoint("refresh_index", RefreshIndexHandler(endpoints.RefreshIndex))
	group.AddEndpoint("status", StatusHandler(endpoints.Status))
	group.AddEndpoint("get_book", GetBookHandler(endpoints.GetBook))
}
