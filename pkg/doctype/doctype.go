// Package doctype is the client for the document type resource.
//
// Each operation is one request through the shared apiclient.Client. Nothing
// is cached and no validation happens locally; the API server owns the
// record shape.
package doctype

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/record"
)

const basePath = "/doctypes"

// ErrEmptyID is returned by Update and Delete when id is blank.
var ErrEmptyID = errors.New("doctype: empty id")

// DocType is a server-defined document template.
// Only its id is interpreted; all other members pass through.
type DocType struct {
	record.Record
}

// New wraps fields into a DocType.
func New(fields map[string]any) (DocType, error) {
	r, err := record.New(fields)
	if err != nil {
		return DocType{}, err
	}
	return DocType{Record: r}, nil
}

// Service exposes the document type operations.
type Service struct {
	api *apiclient.Client
}

// NewService creates a Service on top of the shared API client.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// GetAll lists document types in the order returned by the server.
func (s *Service) GetAll(ctx context.Context) ([]DocType, error) {
	var out []DocType
	if err := s.api.Get(ctx, basePath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts d and returns the server's representation, including its id.
func (s *Service) Create(ctx context.Context, d DocType) (DocType, error) {
	var out DocType
	if err := s.api.Post(ctx, basePath, d, &out); err != nil {
		return DocType{}, err
	}
	return out, nil
}

// Update replaces the document type with the given id.
func (s *Service) Update(ctx context.Context, id string, d DocType) (DocType, error) {
	if id == "" {
		return DocType{}, ErrEmptyID
	}
	var out DocType
	if err := s.api.Put(ctx, itemPath(id), d, &out); err != nil {
		return DocType{}, err
	}
	return out, nil
}

// Delete removes the document type with the given id.
// The response body is returned as-is and may be empty.
func (s *Service) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out json.RawMessage
	if err := s.api.Delete(ctx, itemPath(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func itemPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}
