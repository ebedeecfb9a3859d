package client

import "context"

// Learn request operations - the "I want to learn this too!" button.

type createLearnRequest struct {
	ProjectID int `json:"project_id"`
}

// CreateLearnRequest registers interest in learning a project's course.
// Anonymous callers get a signup redirect in the result; authenticated
// callers get a confirmation with a request ID.
func (c *Client) CreateLearnRequest(ctx context.Context, projectID int) (*LearnRequestResult, error) {
	if projectID <= 0 {
		return nil, validationError("project id must be positive")
	}
	var res LearnRequestResult
	if err := c.post(ctx, "/learn-request/", createLearnRequest{ProjectID: projectID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
