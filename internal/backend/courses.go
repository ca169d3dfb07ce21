package backend

import (
	"context"
	"net/http"

	"github.com/tradevista/admin-console/internal/models"
)

type courseList struct {
	Course []models.Course `json:"course"`
}

// ListCourses fetches all courses. The endpoint is unpaginated.
func (c *Client) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	var result courseList
	if err := c.getJSON(ctx, "/course/all-courses", token, &result); err != nil {
		return nil, err
	}
	return result.Course, nil
}

// DeleteCourse removes a course by id.
func (c *Client) DeleteCourse(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/course/courses/"+id, token, nil, nil)
}
