package dto

import (
	"time"

	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// NumberResponse contains a single record.
type NumberResponse struct {
	ID        string    `json:"id"`
	Value     int64     `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ListNumbersResponse contains all records owned by a user.
type ListNumbersResponse struct {
	Username string           `json:"username"`
	Numbers  []NumberResponse `json:"numbers"`
}

// StatisticsBody contains the aggregate values for a user's records.
// Min and Max are null when the user has no records.
type StatisticsBody struct {
	Count   int     `json:"count"`
	Sum     int64   `json:"sum"`
	Average float64 `json:"average"`
	Min     *int64  `json:"min"`
	Max     *int64  `json:"max"`
}

// StatisticsResponse contains the aggregate summary for a user.
type StatisticsResponse struct {
	Username   string         `json:"username"`
	Statistics StatisticsBody `json:"statistics"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// MapNumberToResponse converts a domain record to its response representation.
func MapNumberToResponse(number *numbersDomain.Number) NumberResponse {
	return NumberResponse{
		ID:        number.ID.String(),
		Value:     number.Value,
		CreatedAt: number.CreatedAt,
	}
}

// MapNumbersToListResponse converts a user's records to the list response.
func MapNumbersToListResponse(username string, numbers []*numbersDomain.Number) ListNumbersResponse {
	items := make([]NumberResponse, 0, len(numbers))
	for _, number := range numbers {
		items = append(items, MapNumberToResponse(number))
	}

	return ListNumbersResponse{
		Username: username,
		Numbers:  items,
	}
}

// MapStatisticsToResponse converts domain statistics to the response representation.
func MapStatisticsToResponse(username string, stats *numbersDomain.Statistics) StatisticsResponse {
	return StatisticsResponse{
		Username: username,
		Statistics: StatisticsBody{
			Count:   stats.Count,
			Sum:     stats.Sum,
			Average: stats.Average,
			Min:     stats.Min,
			Max:     stats.Max,
		},
	}
}
