package domain

// CartItem — строка корзины пользователя. Живёт до замены корзины
// или до успешного оформления заказа.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
}

func NewCartItem(userID, productID int64, quantity int) *CartItem {
	return &CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
}
