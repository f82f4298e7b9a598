// internal/service/harvest/event.go

package harvest

import (
	"encoding/json"
	"fmt"
	"time"

	"bitescout/internal/domain/engagement"
)

// SampleEvent is the wire form of a follower sample announcement
type SampleEvent struct {
	BrandID string    `json:"brand_id"`
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
}

// EncodeSampleEvent serializes a follower sample for the event bus
func EncodeSampleEvent(sample engagement.FollowerSample) ([]byte, error) {
	return json.Marshal(SampleEvent{
		BrandID: sample.BrandID,
		Date:    sample.Date,
		Count:   sample.Count,
	})
}

// DecodeSampleEvent parses a follower sample announcement
func DecodeSampleEvent(payload []byte) (engagement.FollowerSample, error) {
	var event SampleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return engagement.FollowerSample{}, fmt.Errorf("error decoding sample event: %w", err)
	}
	return engagement.FollowerSample{
		BrandID: event.BrandID,
		Date:    event.Date,
		Count:   event.Count,
	}, nil
}
