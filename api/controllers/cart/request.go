package cart

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}
