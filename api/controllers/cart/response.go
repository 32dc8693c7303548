package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/smartshoplabs/smartshop-backend/internal/cart"
)

type cartView struct {
	Lines     []cartsvc.Line  `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Loading   bool            `json:"loading"`
}

func newCartView(snap cartsvc.Snapshot, loading bool) cartView {
	return cartView{
		Lines:     snap.Lines,
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
		Loading:   loading,
	}
}
