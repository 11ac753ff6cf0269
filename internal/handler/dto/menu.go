package dto

import "github.com/tableside/tableside/internal/model"

// MenuItemResponse represents a menu item in API responses.
type MenuItemResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       model.Cents `json:"price"`
	ImageURL    string      `json:"image_url,omitempty"`
	Tags        []string    `json:"tags"`
}

// MenuListResponse represents the full menu.
type MenuListResponse struct {
	Data []MenuItemResponse `json:"data"`
}

// ToMenuItemResponse converts a MenuItem model to a MenuItemResponse DTO.
func ToMenuItemResponse(item *model.MenuItem) *MenuItemResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return &MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Tags:        tags,
	}
}

// ToMenuListResponse converts menu items to a MenuListResponse.
func ToMenuListResponse(items []*model.MenuItem) *MenuListResponse {
	data := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, *ToMenuItemResponse(item))
	}
	return &MenuListResponse{Data: data}
}
