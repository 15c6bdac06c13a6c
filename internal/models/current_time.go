package models

import (
	"time"

	"trajetviz.dev/internal/clock"
)

type CurrentTimeData struct {
	Time          int64  `json:"time"`
	ReadableTime  string `json:"readableTime"`
	DefaultSearch string `json:"defaultSearch"`
}

func NewCurrentTimeData(now, search time.Time) CurrentTimeData {
	return CurrentTimeData{
		Time:          now.UnixMilli(),
		ReadableTime:  now.Format(time.RFC3339),
		DefaultSearch: search.Format(clock.SearchLayout),
	}
}
