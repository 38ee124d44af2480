package usecase

import "github.com/shopspring/decimal"

// AggregateRating считает средний рейтинг по полному множеству оценок:
// одна цифра после запятой, округление половины вверх. Для пустого
// множества возвращает (0, 0).
func AggregateRating(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	var sum int64
	for _, r := range ratings {
		sum += int64(r)
	}

	avg := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(ratings)))).
		Round(1)

	rating, _ := avg.Float64()

	return rating, len(ratings)
}
