package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Comment operations - all methods operate directly on Client

// ListCommentsParams selects a project's comments.
type ListCommentsParams struct {
	ProjectID int
	Page      int
	PageSize  int
}

// AddCommentRequest is the payload for posting a comment. Requires a bearer
// credential.
type AddCommentRequest struct {
	ProjectID int    `json:"project_id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
}

// ListComments returns one page of a project's comments.
func (c *Client) ListComments(ctx context.Context, params ListCommentsParams) (*Page[Comment], error) {
	if params.ProjectID <= 0 {
		return nil, validationError("project_id is required")
	}
	q := url.Values{}
	q.Set("project_id", strconv.Itoa(params.ProjectID))
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}
	var page Page[Comment]
	if err := c.get(ctx, "/comments/", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCommentOptions returns the predefined safe-comment suggestions shown
// to young commenters.
func (c *Client) ListCommentOptions(ctx context.Context) ([]string, error) {
	var options []string
	if err := c.get(ctx, "/comments/options/", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// AddComment posts a comment to a project.
func (c *Client) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	if err := ValidateComment(req); err != nil {
		return nil, err
	}
	var cm Comment
	if err := c.post(ctx, "/comments/add/", req, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// DeleteComment removes a comment. The backend only honors this for the
// comment's owner.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	if id <= 0 {
		return validationError("comment id must be positive")
	}
	return c.delete(ctx, fmt.Sprintf("/comments/%d/", id))
}
