package dto

type ProductRequest struct {
	Title       string                 `json:"title" validate:"required,max=200"`
	Description string                 `json:"description"`
	Category    string                 `json:"category" validate:"required,max=50"`
	Price       float64                `json:"price" validate:"gte=0"`
	Currency    string                 `json:"currency" validate:"omitempty,is-currency"`
	Stats       map[string]interface{} `json:"stats"`
	Images      []string               `json:"images"`
	IsAvailable *bool                  `json:"is_available"`
}
