package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/pagination"
)

type trainerPage struct {
	Trainers []models.User   `json:"trainers"`
	Meta     pagination.Meta `json:"meta"`
}

type studentPage struct {
	Students []models.User   `json:"students"`
	Meta     pagination.Meta `json:"meta"`
}

// CreateTrainerPayload is the add-trainer creation shape.
type CreateTrainerPayload struct {
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Password       string                `json:"password"`
	Phone          string                `json:"phone"`
	Username       string                `json:"username"`
	Address        models.Address        `json:"address"`
	TradingProfile models.TradingProfile `json:"treding_profile"`
}

// ListTrainers fetches one page of trainers.
func (c *Client) ListTrainers(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error) {
	var result trainerPage
	path := fmt.Sprintf("/user/trainers?page=%d&limit=%d", page, limit)
	if err := c.getJSON(ctx, path, token, &result); err != nil {
		return nil, pagination.Meta{}, err
	}
	return result.Trainers, result.Meta, nil
}

// AddTrainer creates a trainer account.
func (c *Client) AddTrainer(ctx context.Context, token string, payload CreateTrainerPayload) (*models.User, error) {
	var created models.User
	if err := c.doJSON(ctx, http.MethodPost, "/user/add-trainer", token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteTrainer removes a trainer by id.
func (c *Client) DeleteTrainer(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/user/trainers/"+id, token, nil, nil)
}

// ListStudents fetches one page of students.
func (c *Client) ListStudents(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error) {
	var result studentPage
	path := fmt.Sprintf("/user/students?page=%d&limit=%d", page, limit)
	if err := c.getJSON(ctx, path, token, &result); err != nil {
		return nil, pagination.Meta{}, err
	}
	return result.Students, result.Meta, nil
}

// DeleteStudent removes a student by id.
func (c *Client) DeleteStudent(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/user/students/"+id, token, nil, nil)
}
