package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
)

// ErrNotFound reports that no cart blob exists under the storage key.
var ErrNotFound = errors.New("cart: blob not found")

// Store persists the full serialized cart under a single key. Every
// write replaces the whole blob; there is no incremental format.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// record is the wire shape of one persisted cart line.
type record struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageRef    string          `json:"image_ref"`
	Quantity    int             `json:"quantity"`
}

func encodeLines(lines []Line) ([]byte, error) {
	records := make([]record, 0, len(lines))
	for _, line := range lines {
		records = append(records, record{
			ProductID:   line.Product.ID,
			Name:        line.Product.Name,
			Description: line.Product.Description,
			Price:       line.Product.Price,
			Category:    line.Product.Category,
			ImageRef:    line.Product.ImageRef,
			Quantity:    line.Quantity,
		})
	}
	return json.Marshal(records)
}

func decodeLines(payload []byte) ([]Line, error) {
	var records []record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(records))
	index := map[string]int{}
	for _, rec := range records {
		if rec.ProductID == "" || rec.Quantity < 1 {
			continue
		}
		if at, ok := index[rec.ProductID]; ok {
			lines[at].Quantity += rec.Quantity
			continue
		}
		index[rec.ProductID] = len(lines)
		lines = append(lines, Line{
			Product: catalog.Product{
				ID:          rec.ProductID,
				Name:        rec.Name,
				Description: rec.Description,
				Category:    rec.Category,
				Price:       rec.Price,
				ImageRef:    rec.ImageRef,
			},
			Quantity: rec.Quantity,
		})
	}
	return lines, nil
}
