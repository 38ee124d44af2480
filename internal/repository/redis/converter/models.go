package converter

// ProductCardRedisModel — карточка товара в кэше Redis.
type ProductCardRedisModel struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	OriginalPrice *int64  `json:"original_price,omitempty"`
	Image         string  `json:"image"`
	CategoryID    string  `json:"category_id"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	Featured      bool    `json:"featured"`
	Trending      bool    `json:"trending"`
}
