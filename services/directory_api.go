package services

import (
	"context"
	"fmt"
	"net/http"

	"admin-console/models"
)

// Categories returns all report categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.getJSON(ctx, "/categories/", nil, &categories)
	return categories, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, payload models.CategoryPayload) (models.Category, error) {
	var category models.Category
	err := c.sendJSON(ctx, http.MethodPost, "/categories/", payload, &category)
	return category, err
}

// UpdateCategory patches a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, payload models.CategoryPayload) (models.Category, error) {
	var category models.Category
	err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/categories/%d/", id), payload, &category)
	return category, err
}

// DeleteCategory deletes (soft-deactivates server-side) a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.deleteResource(ctx, fmt.Sprintf("/categories/%d/", id))
}

// Users returns all users visible to the caller.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.getJSON(ctx, "/users/", nil, &users)
	return users, err
}

// User returns a single user.
func (c *Client) User(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := c.getJSON(ctx, fmt.Sprintf("/users/%d/", id), nil, &user)
	return user, err
}

// UpdateUser patches a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload map[string]any) (models.User, error) {
	var user models.User
	err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/", id), payload, &user)
	return user, err
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.deleteResource(ctx, fmt.Sprintf("/users/%d/", id))
}

// SetUserRole assigns a role to a user.
func (c *Client) SetUserRole(ctx context.Context, id int64, role models.Role) (models.User, error) {
	var user models.User
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/set_role/", id),
		map[string]models.Role{"role": role}, &user)
	return user, err
}

// SetUserTeam assigns a user to a team; a nil team clears the assignment.
func (c *Client) SetUserTeam(ctx context.Context, id int64, team *int64) (models.User, error) {
	var user models.User
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/set_team/", id),
		map[string]*int64{"team": team}, &user)
	return user, err
}

// Teams returns all teams.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := c.getJSON(ctx, "/teams/", nil, &teams)
	return teams, err
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, payload models.TeamPayload) (models.Team, error) {
	var team models.Team
	err := c.sendJSON(ctx, http.MethodPost, "/teams/", payload, &team)
	return team, err
}

// UpdateTeam patches a team.
func (c *Client) UpdateTeam(ctx context.Context, id int64, payload models.TeamPayload) (models.Team, error) {
	var team models.Team
	err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/teams/%d/", id), payload, &team)
	return team, err
}

// DeleteTeam deletes a team.
func (c *Client) DeleteTeam(ctx context.Context, id int64) error {
	return c.deleteResource(ctx, fmt.Sprintf("/teams/%d/", id))
}
