package api

import (
	"context"
	"net/http"
	"strconv"

	"tableside/internal/domain"
)

func (c *Client) Restaurant(ctx context.Context, id int) (domain.Restaurant, error) {
	var rest domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants/"+strconv.Itoa(id), nil, false, &rest)
	return rest, err
}

func (c *Client) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var rests []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants", nil, true, &rests)
	return rests, err
}

// Menu returns the public menu grouped by category.
func (c *Client) Menu(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	var menu []domain.MenuCategory
	err := c.do(ctx, http.MethodGet, "/restaurants/"+strconv.Itoa(restaurantID)+"/menu", nil, false, &menu)
	return menu, err
}

func (c *Client) Zones(ctx context.Context, restaurantID int) ([]domain.Zone, error) {
	var zones []domain.Zone
	err := c.do(ctx, http.MethodGet, "/restaurants/"+strconv.Itoa(restaurantID)+"/zones", nil, false, &zones)
	return zones, err
}

// Category and dish management, admin menu view only.

type CategoryRequest struct {
	Name string `json:"name"`
}

func (c *Client) CreateCategory(ctx context.Context, restaurantID int, name string) (domain.MenuCategory, error) {
	if name == "" {
		return domain.MenuCategory{}, &ValidationError{Field: "name", Reason: "required"}
	}
	var cat domain.MenuCategory
	err := c.do(ctx, http.MethodPost, "/restaurants/"+strconv.Itoa(restaurantID)+"/categories",
		CategoryRequest{Name: name}, true, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+strconv.Itoa(categoryID), nil, true, nil)
}

type DishRequest struct {
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
}

func (c *Client) CreateDish(ctx context.Context, req DishRequest) (domain.Dish, error) {
	if req.Name == "" {
		return domain.Dish{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if req.Price <= 0 {
		return domain.Dish{}, &ValidationError{Field: "price", Reason: "must be positive"}
	}
	var dish domain.Dish
	err := c.do(ctx, http.MethodPost, "/dishes", req, true, &dish)
	return dish, err
}

// ToggleStopList flips a dish's availability.
func (c *Client) ToggleStopList(ctx context.Context, dishID int) error {
	return c.do(ctx, http.MethodPatch, "/dishes/"+strconv.Itoa(dishID)+"/stop-list", nil, true, nil)
}
