// Package storage defines where the crawl's artifacts land: the dataset as a
// JSON object and the diagnostic trace archive as a binary object.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ContentTypeJSON and ContentTypeZip are the content types of the two
// artifacts a run produces.
const (
	ContentTypeJSON = "application/json"
	ContentTypeZip  = "application/zip"
)

// BlobStore writes one object and returns its URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data io.Reader) (string, error)
}

// PutJSON marshals v and uploads it under path.
func PutJSON(ctx context.Context, store BlobStore, path string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", path, err)
	}
	uri, err := store.PutObject(ctx, path, ContentTypeJSON, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("put %s: %w", path, err)
	}
	return uri, nil
}
