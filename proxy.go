package librarian

import (
	"context"
	"errors"
)

// ProxyMiddleware implements Service over a remote EndpointSet, so thin
// clients (the stdio MCP bridge) can reuse the Service interface.
func ProxyMiddleware(endpoints *EndpointSet) ServiceMiddleware {
	return func(next Service) Service {
		return &proxyMiddleware{
			endpoints: endpoints,
		}
	}
}

type proxyMiddleware struct {
	endpoints *EndpointSet
}

func (mw *proxyMiddleware) Close() error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) Initialize(ctx context.Context) error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) Recommend(ctx context.Context, message string) (*Recommendation, error) {
	req := RecommendRequest{
		Message: message,
	}

	resp, err := mw.endpoints.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	rec, ok := resp.(*Recommendation)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return rec, nil
}

func (mw *proxyMiddleware) SearchBooks(ctx context.Context, query string, k ...int) ([]BookMatch, error) {
	n := 0
	if len(k) > 0 {
		n = k[0]
	}

	req := SearchBooksRequest{
		Query: query,
		K:     n,
	}

	resp, err := mw.endpoints.SearchBooks(ctx, req)
	if err != nil {
		return nil, err
	}

	matches, ok := resp.([]BookMatch)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return matches, nil
}

func (mw *proxyMiddleware) RefreshIndex(ctx context.Context) error {
	_, err := mw.endpoints.RefreshIndex(ctx, nil)
	return err
}

func (mw *proxyMiddleware) Status(ctx context.Context) (*IndexStatus, error) {
	resp, err := mw.endpoints.Status(ctx, nil)
	if err != nil {
		return nil, err
	}

	status, ok := resp.(*IndexStatus)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return status, nil
}

func (mw *proxyMiddleware) GetBook(ctx context.Context, id int) (*BookRecord, error) {
	resp, err := mw.endpoints.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	book, ok := resp.(*BookRecord)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return book, nil
}
