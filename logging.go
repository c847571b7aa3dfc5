package librarian

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "librarian"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) Initialize(ctx context.Context) error {
	log := mw.log.With(
		zap.String("action", "initialize"),
	)

	err := mw.next.Initialize(ctx)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("index ready")
	return nil
}

func (mw *loggingMiddleware) Recommend(ctx context.Context, message string) (*Recommendation, error) {
	log := mw.log.With(
		zap.String("action", "recommend"),
	)

	rec, err := mw.next.Recommend(ctx, message)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("message answered",
		zap.Bool("book_request", rec.IsBookRequest),
		zap.Int("books", len(rec.Books)),
	)

	return rec, nil
}

func (mw *loggingMiddleware) SearchBooks(ctx context.Context, query string, k ...int) ([]BookMatch, error) {
	var n int
	if len(k) > 0 {
		n = k[0]
	}

	log := mw.log.With(
		zap.String("action", "search_books"),
		zap.String("query", query),
	)

	if n > 0 {
		log = log.With(
			zap.Int("k", n),
		)
	}

	matches, err := mw.next.SearchBooks(ctx, query, k...)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("books searched", zap.Int("count", len(matches)))
	return matches, nil
}

func (mw *loggingMiddleware) RefreshIndex(ctx context.Context) error {
	log := mw.log.With(
		zap.String("action", "refresh_index"),
	)

	err := mw.next.RefreshIndex(ctx)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("index refreshed")
	return nil
}

func (mw *loggingMiddleware) Status(ctx context.Context) (*IndexStatus, error) {
	log := mw.log.With(
		zap.String("action", "status"),
	)

	status, err := mw.next.Status(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("status reported",
		zap.Bool("initialized", status.Initialized),
		zap.Int("books", status.BookCount),
		zap.Int("embeddings", status.EmbeddingCount),
	)

	return status, nil
}

func (mw *loggingMiddleware) GetBook(ctx context.Context, id int) (*BookRecord, error) {
	log := mw.log.With(
		zap.String("action", "get_book"),
		zap.Int("book_id", id),
	)

	book, err := mw.next.GetBook(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("book fetched")
	return book, nil
}
