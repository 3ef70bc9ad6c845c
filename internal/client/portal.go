package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/csesa/portal-client/internal/model"
)

func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, "/events/", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Members lists the association team.
func (c *Client) Members(ctx context.Context) ([]model.User, error) {
	var members []model.User
	if err := c.do(ctx, http.MethodGet, "/users/list/", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/profile/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPatch, "/profile/", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
