package entity

import "time"

// DefaultMinVisitTime is applied when a URL is created without an explicit
// minimum visit time.
const DefaultMinVisitTime = 30

// Url is a registered exchange target. Hits is the lifetime counter;
// TodayHits accumulates until an operator reset. PointsUsed tracks the
// points this URL has spent receiving hits.
type Url struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	URL          string    `json:"url"`
	MinVisitTime int       `json:"minVisitTime"`
	Hits         int       `json:"hits"`
	TodayHits    int       `json:"todayHits"`
	PointsUsed   int       `json:"pointsUsed"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}
