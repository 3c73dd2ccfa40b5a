// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package restclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pdiddy/research-projects/pkg/types"
)

// TypedService implements a typed record repository for one collection.
type TypedService[Req, Rec any] struct {
	c          *Client
	name       string
	collection string
}

// Publications returns the publication repository.
func (c *Client) Publications() *TypedService[types.PublicationRequest, types.Publication] {
	return &TypedService[types.PublicationRequest, types.Publication]{c: c, name: "publication", collection: "publications"}
}

// Patents returns the patent repository.
func (c *Client) Patents() *TypedService[types.PatentRequest, types.Patent] {
	return &TypedService[types.PatentRequest, types.Patent]{c: c, name: "patent", collection: "patents"}
}

// Research returns the research repository.
func (c *Client) Research() *TypedService[types.ResearchRequest, types.Research] {
	return &TypedService[types.ResearchRequest, types.Research]{c: c, name: "research", collection: "research"}
}

func (s *TypedService[Req, Rec]) Create(ctx context.Context, req Req) (*Rec, error) {
	var rec Rec
	if err := s.c.doJSON(ctx, "create "+s.name, http.MethodPost, "/api/"+s.collection, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *TypedService[Req, Rec]) Update(ctx context.Context, id string, req Req) (*Rec, error) {
	var rec Rec
	path := "/api/" + s.collection + "/" + url.PathEscape(id)
	if err := s.c.doJSON(ctx, "update "+s.name, http.MethodPut, path, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
