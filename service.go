package librarian

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/flarexio/librarian/composer"
	"github.com/flarexio/librarian/embedding"
	"github.com/flarexio/librarian/vector"
)

// Service defines the core logic of the Librarian recommendation engine.
type Service interface {

	// Close gracefully shuts down the service.
	Close() error

	// Initialize builds the similarity index, embedding any catalog books
	// that have no persisted vector yet. It is a no-op once the index is
	// ready.
	Initialize(ctx context.Context) error

	// Recommend answers a chat message: book requests get ranked
	// recommendations, everything else gets a general reply.
	Recommend(ctx context.Context, message string) (*Recommendation, error)

	// SearchBooks ranks catalog books against the query by similarity.
	SearchBooks(ctx context.Context, query string, k ...int) ([]BookMatch, error)

	// RefreshIndex clears the persisted vectors and rebuilds the index
	// from scratch, re-embedding every book.
	RefreshIndex(ctx context.Context) error

	// Status reports index readiness and entry counts.
	Status(ctx context.Context) (*IndexStatus, error)

	// GetBook reads a single book from the catalog, bypassing the index.
	GetBook(ctx context.Context, id int) (*BookRecord, error)
}

type ServiceMiddleware func(Service) Service

// Catalog is the book-records collaborator. The engine only ever reads it.
type Catalog interface {
	ListAllBooks(ctx context.Context) ([]BookRecord, error)
	GetBookByID(ctx context.Context, id int) (*BookRecord, error)
}

func NewService(catalog Catalog, store vector.Store, generator embedding.Generator, composer *composer.Composer) (Service, error) {
	if catalog == nil || store == nil || generator == nil || composer == nil {
		return nil, errors.New("missing dependency")
	}

	log := zap.L().With(
		zap.String("service", "librarian"),
	)

	return &service{
		catalog:   catalog,
		store:     store,
		generator: generator,
		composer:  composer,
		log:       log,
	}, nil
}

type service struct {
	catalog   Catalog
	store     vector.Store
	generator embedding.Generator
	composer  *composer.Composer

	// Index state, guarded so concurrent callers cannot race a double
	// initialization and duplicate remote embedding calls.
	mu             sync.Mutex
	initialized    bool
	realEmbeddings bool
	books          []BookRecord
	index          *vector.Index

	log *zap.Logger
}

func (svc *service) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.initialized = false
	svc.realEmbeddings = false
	svc.books = nil
	svc.index = nil

	return nil
}

func (svc *service) Initialize(ctx context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.initLocked(ctx)
}

// initLocked populates the index. Books missing a persisted vector are
// embedded strictly in catalog order; a single embedding failure aborts the
// whole initialization, since a partial index is never served. Callers must
// hold svc.mu.
func (svc *service) initLocked(ctx context.Context) error {
	if svc.initialized {
		return nil
	}

	log := svc.log.With(
		zap.String("action", "initialize"),
	)

	if err := svc.store.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrInitializationFailed, err)
	}

	books, err := svc.catalog.ListAllBooks(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitializationFailed, err)
	}

	if len(books) == 0 {
		svc.books = nil
		svc.index = vector.NewIndex(nil)
		svc.realEmbeddings = true
		svc.initialized = true

		log.Warn("catalog is empty, index initialized with no books")
		return nil
	}

	embedded := 0
	for _, book := range books {
		if _, ok := svc.store.Get(book.ID); ok {
			continue
		}

		vec, err := svc.generator.Embed(ctx, book.EmbeddingText())
		if err != nil {
			log.Error("embedding failed",
				zap.Int("book_id", book.ID),
				zap.Error(err),
			)

			return fmt.Errorf("%w: book %d: %v", ErrInitializationFailed, book.ID, err)
		}

		meta := vector.Metadata{
			Title:  book.Title,
			Author: book.Author,
			Genre:  book.Genre,
			Status: string(book.Status),
		}

		if err := svc.store.Put(book.ID, vec, meta); err != nil {
			return fmt.Errorf("%w: persisting book %d: %v", ErrInitializationFailed, book.ID, err)
		}

		embedded++
	}

	// Reload from the store; every catalog book must have a vector.
	embeddings := make([][]float64, len(books))
	for i, book := range books {
		vec, ok := svc.store.Get(book.ID)
		if !ok {
			return fmt.Errorf("%w: book %d has no persisted vector", ErrInitializationFailed, book.ID)
		}

		embeddings[i] = vec
	}

	if stats := svc.store.Stats(); stats.Entries != len(books) {
		return fmt.Errorf("%w: store holds %d vectors for %d books",
			ErrInitializationFailed, stats.Entries, len(books))
	}

	svc.books = books
	svc.index = vector.NewIndex(embeddings)
	svc.realEmbeddings = true
	svc.initialized = true

	log.Info("index initialized",
		zap.Int("books", len(books)),
		zap.Int("embedded", embedded),
	)

	return nil
}

// snapshot ensures the index is ready and returns the current books and
// index. The returned values are read-only and safe to use unlocked.
func (svc *service) snapshot(ctx context.Context) ([]BookRecord, *vector.Index, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := svc.initLocked(ctx); err != nil {
		return nil, nil, err
	}

	if !svc.realEmbeddings {
		return nil, nil, ErrIndexNotReady
	}

	if len(svc.books) == 0 {
		return nil, nil, ErrNoBooksFound
	}

	return svc.books, svc.index, nil
}

func (svc *service) SearchBooks(ctx context.Context, query string, k ...int) ([]BookMatch, error) {
	n := 5 // Default number of results to return
	if len(k) > 0 && k[0] > 0 {
		n = k[0]
	}

	books, index, err := svc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	queryVec, err := svc.generator.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}

	hits := index.Search(queryVec, n)

	matches := make([]BookMatch, len(hits))
	for i, hit := range hits {
		matches[i] = BookMatch{
			Book:       books[hit.Pos],
			Similarity: hit.Similarity,
		}
	}

	return matches, nil
}

func (svc *service) Recommend(ctx context.Context, message string) (*Recommendation, error) {
	if !isBookRequest(message) {
		return &Recommendation{
			Response:      svc.composer.GeneralReply(ctx, message),
			IsBookRequest: false,
		}, nil
	}

	matches, err := svc.SearchBooks(ctx, message, 5)
	if err != nil {
		if errors.Is(err, ErrNoBooksFound) {
			// An empty catalog is a valid state; ask for clarification.
			return &Recommendation{
				Response:      svc.composer.Recommendation(ctx, message, nil),
				IsBookRequest: true,
			}, nil
		}

		return nil, err
	}

	candidates := make([]composer.Candidate, len(matches))
	for i, match := range matches {
		candidates[i] = composer.Candidate{
			Title:       match.Book.Title,
			Author:      match.Book.Author,
			Genre:       match.Book.Genre,
			Description: match.Book.Description,
		}
	}

	books := make([]BookRecord, 0, 3)
	for _, match := range matches {
		if len(books) == 3 {
			break
		}

		books = append(books, match.Book)
	}

	return &Recommendation{
		Response:      svc.composer.Recommendation(ctx, message, candidates),
		Books:         books,
		IsBookRequest: true,
	}, nil
}

func (svc *service) RefreshIndex(ctx context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.initialized = false
	svc.realEmbeddings = false
	svc.books = nil
	svc.index = nil

	if err := svc.store.ClearAll(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	return svc.initLocked(ctx)
}

func (svc *service) Status(ctx context.Context) (*IndexStatus, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return &IndexStatus{
		Initialized:    svc.initialized,
		RealEmbeddings: svc.realEmbeddings,
		BookCount:      len(svc.books),
		EmbeddingCount: svc.store.Stats().Entries,
	}, nil
}

func (svc *service) GetBook(ctx context.Context, id int) (*BookRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidBookID
	}

	return svc.catalog.GetBookByID(ctx, id)
}

var bookRequestKeywords = []string{
	"recommend", "recommendation", "suggest", "suggestion",
	"book", "books", "read", "reading", "novel", "novels",
	"story", "stories", "looking",
}

// isBookRequest decides whether a chat message asks for recommendations.
func isBookRequest(message string) bool {
	for _, token := range strings.Fields(strings.ToLower(message)) {
		token = strings.Trim(token, ".,!?;:\"'()")
		for _, keyword := range bookRequestKeywords {
			if token == keyword {
				return true
			}
		}
	}

	return false
}
