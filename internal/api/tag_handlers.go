package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reellog/reellog-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the global tag vocabulary",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "attachTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/movies/{id}/tags",
		Summary:       "Attach tag",
		Description:   "Attaches a tag to a movie, creating the tag if needed; idempotent",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAttachTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "detachTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/movies/{id}/tags/{tagId}",
		Summary:     "Detach tag",
		Description: "Removes a tag from a movie; idempotent, the tag itself stays",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDetachTag)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Normalized tag name"`
}

func toTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// ListTagsInput contains parameters for listing tags.
type ListTagsInput struct {
	Authorization string `header:"Authorization"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// AttachTagRequest is the request body for attaching a tag.
type AttachTagRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"100" doc:"Tag name (normalized before use)"`
}

// AttachTagInput wraps the attach tag request for Huma.
type AttachTagInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Movie ID"`
	Body          AttachTagRequest
}

// TagOutput wraps a single tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// DetachTagInput contains parameters for detaching a tag.
type DetachTagInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Movie ID"`
	TagID         int64  `path:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = toTagResponse(t)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleAttachTag(ctx context.Context, input *AttachTagInput) (*TagOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Attach(ctx, accountID, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: toTagResponse(tag)}, nil
}

func (s *Server) handleDetachTag(ctx context.Context, input *DetachTagInput) (*MessageOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.Detach(ctx, accountID, input.ID, input.TagID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag detached"}}, nil
}
