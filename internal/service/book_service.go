package service

import (
	"context"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookService manages the digital library catalogue
type BookService struct {
	bookRepo repository.BookRepository
	logger   *zap.Logger
}

func NewBookService(bookRepo repository.BookRepository, logger *zap.Logger) *BookService {
	return &BookService{bookRepo: bookRepo, logger: logger}
}

// List returns every book in the library
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.List(ctx)
}

// Get returns one book's metadata
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

// Add registers a new book whose binary already sits in the object store
func (s *BookService) Add(ctx context.Context, addedBy string, req *domain.AddBookRequest) (*domain.Book, error) {
	book := &domain.Book{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Author:      req.Author,
		Language:    req.Language,
		Description: req.Description,
		StoragePath: req.StoragePath,
		CoverURL:    req.CoverURL,
		AddedBy:     addedBy,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	s.logger.Info("Book added to library",
		zap.String("book_id", book.ID),
		zap.String("title", book.Title),
		zap.String("added_by", addedBy))
	return book, nil
}

// RecordPageCount backfills a book's page count after its first parse.
// Best effort; catalogue metadata only.
func (s *BookService) RecordPageCount(ctx context.Context, id string, pageCount int) {
	if pageCount <= 0 {
		return
	}
	if err := s.bookRepo.SetPageCount(ctx, id, pageCount); err != nil {
		s.logger.Warn("Failed to record page count",
			zap.String("book_id", id),
			zap.Error(err))
	}
}
