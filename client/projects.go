package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Project operations - all methods operate directly on Client

// ListProjectsParams filters and orders the project list. Zero values are
// omitted from the query.
type ListProjectsParams struct {
	Page       int
	PageSize   int
	CourseName string
	Search     string
	// Ordering is a backend sort expression, e.g. "-total_reactions" or
	// "-created_at".
	Ordering string
}

func (p ListProjectsParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.CourseName != "" {
		q.Set("course_name", p.CourseName)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Ordering != "" {
		q.Set("ordering", p.Ordering)
	}
	return q
}

// ListProjects returns one page of projects.
func (c *Client) ListProjects(ctx context.Context, params ListProjectsParams) (*Page[Project], error) {
	var page Page[Project]
	if err := c.get(ctx, "/", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FeaturedProjects returns the top projects by total reactions — the
// gallery's featured strip.
func (c *Client) FeaturedProjects(ctx context.Context, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 3
	}
	page, err := c.ListProjects(ctx, ListProjectsParams{Page: 1, PageSize: limit, Ordering: "-total_reactions"})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetProject returns a project's full detail, including its comments and
// related projects.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	if id <= 0 {
		return nil, validationError("project id must be positive")
	}
	var p Project
	if err := c.get(ctx, fmt.Sprintf("/%d/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCourses returns the distinct course names available for filtering.
func (c *Client) ListCourses(ctx context.Context) ([]string, error) {
	var courses []string
	if err := c.get(ctx, "/courses/", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
