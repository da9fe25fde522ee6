// AngelaMos | 2026
// service.go

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/library-api/internal/author"
	"github.com/carterperez-dev/library-api/internal/core"
)

type Service struct {
	db      *sqlx.DB
	repo    Repository
	authors author.Repository
	catalog Catalog
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	authors author.Repository,
	catalog Catalog,
) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		authors: authors,
		catalog: catalog,
	}
}

// Create inserts a book and links its authors in one transaction. A taken
// ISBN-13 or an unknown author id aborts before any write.
func (s *Service) Create(
	ctx context.Context,
	req CreateBookRequest,
) (*BookResponse, error) {
	if req.ISBN13 != nil {
		taken, err := s.repo.ExistsByISBN13(ctx, *req.ISBN13)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("isbn13 taken: %w", core.ErrConflict)
		}
	}

	if len(req.AuthorIDs) > 0 {
		allExist, err := s.authors.ExistAll(ctx, req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if !allExist {
			return nil, fmt.Errorf("unknown author: %w", core.ErrNotFound)
		}
	}

	b := &Book{
		Title:           req.Title,
		ISBN10:          req.ISBN10,
		ISBN13:          req.ISBN13,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
	}

	if len(req.AuthorIDs) == 0 {
		if err := s.repo.Create(ctx, b); err != nil {
			return nil, err
		}
	} else {
		err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
			if err := NewRepository(tx).Create(ctx, b); err != nil {
				return err
			}
			return author.NewRepository(tx).
				ReplaceBookAuthors(ctx, b.ID, req.AuthorIDs)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.withAuthors(ctx, b)
}

func (s *Service) Get(ctx context.Context, id int64) (*BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, b)
}

func (s *Service) List(
	ctx context.Context,
	params ListBooksParams,
) ([]Book, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateBookRequest,
) (*BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ISBN13 != nil {
		taken, err := s.repo.ExistsByISBN13Excluding(ctx, *req.ISBN13, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("isbn13 taken: %w", core.ErrConflict)
		}
	}

	if req.AuthorIDs != nil && len(*req.AuthorIDs) > 0 {
		allExist, err := s.authors.ExistAll(ctx, *req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if !allExist {
			return nil, fmt.Errorf("unknown author: %w", core.ErrNotFound)
		}
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ISBN10 != nil {
		b.ISBN10 = req.ISBN10
	}
	if req.ISBN13 != nil {
		b.ISBN13 = req.ISBN13
	}
	if req.Genre != nil {
		b.Genre = req.Genre
	}
	if req.PublicationDate != nil {
		b.PublicationDate = req.PublicationDate
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.CoverImageURL != nil {
		b.CoverImageURL = req.CoverImageURL
	}

	if req.AuthorIDs == nil {
		if err := s.repo.Update(ctx, b); err != nil {
			return nil, err
		}
	} else {
		err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
			if err := NewRepository(tx).Update(ctx, b); err != nil {
				return err
			}
			return author.NewRepository(tx).
				ReplaceBookAuthors(ctx, b.ID, *req.AuthorIDs)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.withAuthors(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("delete book: %w", core.ErrNotFound)
	}
	return nil
}

// Exists satisfies borrow-side existence checks without exposing the row.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) Search(
	ctx context.Context,
	query, genre string,
	limit int,
) ([]Book, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.Search(ctx, query, genre, limit)
}

func (s *Service) SearchSimple(
	ctx context.Context,
	title, genre, authorName string,
	limit int,
) ([]Book, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.SearchSimple(ctx, title, genre, authorName, limit)
}

// EnrichFromCatalog fills the book's empty descriptive fields from the
// external catalog. Present local values win; provenance columns are
// overwritten every time so they always name the latest source record.
func (s *Service) EnrichFromCatalog(
	ctx context.Context,
	id int64,
) (*BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isbn := ""
	switch {
	case b.ISBN13 != nil && *b.ISBN13 != "":
		isbn = *b.ISBN13
	case b.ISBN10 != nil && *b.ISBN10 != "":
		isbn = *b.ISBN10
	default:
		return nil, fmt.Errorf("book has no isbn: %w", core.ErrNotFound)
	}

	v, err := s.catalog.SearchByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	mergeVolume(b, v)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, b)
}

// CreateFromCatalog imports a book by ISBN. The stripped length decides
// which identifier family the lookup and conflict check use.
func (s *Service) CreateFromCatalog(
	ctx context.Context,
	rawISBN string,
) (*BookResponse, error) {
	isbn := stripISBN(rawISBN)
	if len(isbn) != 10 && len(isbn) != 13 {
		return nil, fmt.Errorf("invalid isbn %q: %w", rawISBN, core.ErrInvalidInput)
	}

	if len(isbn) == 13 {
		taken, err := s.repo.ExistsByISBN13(ctx, isbn)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("isbn13 taken: %w", core.ErrConflict)
		}
	}

	v, err := s.catalog.SearchByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	// The catalog may report a different ISBN-13 than the one queried.
	if v.ISBN13 != nil {
		taken, err := s.repo.ExistsByISBN13(ctx, *v.ISBN13)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("isbn13 taken: %w", core.ErrConflict)
		}
	}

	source := v.Source
	externalID := v.ExternalID
	b := &Book{
		Title:            v.Title,
		ISBN10:           v.ISBN10,
		ISBN13:           v.ISBN13,
		Genre:            v.Genre,
		PublicationDate:  v.PublicationDate,
		Description:      v.Description,
		CoverImageURL:    v.CoverImageURL,
		ExternalSource:   &source,
		ExternalID:       &externalID,
		ExternalMetadata: v.Metadata,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, b)
}

func (s *Service) SearchCatalog(
	ctx context.Context,
	query string,
	maxResults int,
) ([]CatalogVolume, error) {
	return s.catalog.Search(ctx, query, maxResults)
}

func (s *Service) withAuthors(
	ctx context.Context,
	b *Book,
) (*BookResponse, error) {
	authors, err := s.authors.ListByBookID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	resp := ToBookResponse(b, authors)
	return &resp, nil
}

func mergeVolume(b *Book, v *CatalogVolume) {
	if b.Description == nil {
		b.Description = v.Description
	}
	if b.Genre == nil {
		b.Genre = v.Genre
	}
	if b.PublicationDate == nil {
		b.PublicationDate = v.PublicationDate
	}
	if b.ISBN10 == nil {
		b.ISBN10 = v.ISBN10
	}
	if b.ISBN13 == nil {
		b.ISBN13 = v.ISBN13
	}
	if b.CoverImageURL == nil {
		b.CoverImageURL = v.CoverImageURL
	}

	source := v.Source
	externalID := v.ExternalID
	b.ExternalSource = &source
	b.ExternalID = &externalID
	b.ExternalMetadata = v.Metadata
}

func stripISBN(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, raw)
}
