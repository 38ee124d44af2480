package domain

import "time"

// Review описывает отзыв пользователя о товаре.
// Author — снимок имени автора на момент создания; последующие смены имени
// пользователя не меняют прошлые отзывы. UserID может быть nil для
// устаревших/анонимных отзывов.
type Review struct {
	ID         int64
	ProductID  int64
	UserID     *int64
	Author     string
	Rating     int // Целое в диапазоне [1, 5]
	Text       string
	ReviewDate time.Time // Гранулярность — день, не момент времени
	CreatedAt  time.Time
}

func NewReview(productID int64, userID *int64, author string, rating int, text string, reviewDate time.Time) *Review {
	return &Review{
		ProductID:  productID,
		UserID:     userID,
		Author:     author,
		Rating:     rating,
		Text:       text,
		ReviewDate: reviewDate,
	}
}
