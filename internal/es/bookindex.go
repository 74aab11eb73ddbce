package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/book_library/internal/models"
)

// BookIndex mirrors the catalog into an elasticsearch index so the
// fuzzy search endpoint has something to query. The relational store
// stays authoritative.
type BookIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func (b *BookIndex) IndexBook(ctx context.Context, book *models.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("es: json.Marshal failed: %w", err)
	}

	res, err := b.ES.Index(
		b.Index,
		bytes.NewReader(data),
		b.ES.Index.WithContext(ctx),
		b.ES.Index.WithDocumentID(fmt.Sprint(book.ID)),
	)
	if err != nil {
		return fmt.Errorf("es: index failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es: index error: %s", res.Status())
	}
	return nil
}

func (b *BookIndex) RemoveBook(ctx context.Context, id uint) error {
	res, err := b.ES.Delete(
		b.Index,
		fmt.Sprint(id),
		b.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete error: %s", res.Status())
	}
	return nil
}
