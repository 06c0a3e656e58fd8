package engine

import "time"

// Layer identifiers stamped into response metadata.
const (
	layerID   = "job-discovery"
	layerName = "Job Discovery & Ranking"
)

// Metadata describes which layer produced a response and how long it took.
type Metadata struct {
	LayerID          string    `json:"layerId"`
	LayerName        string    `json:"layerName"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Timestamp        time.Time `json:"timestamp"`
}

// Response is the uniform envelope returned by every engine operation.
// Exactly one of Data and Error is set.
type Response struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data,omitempty"`
	Error    *Error   `json:"error,omitempty"`
	Metadata Metadata `json:"metadata"`
}

func okResponse(data any, started time.Time) *Response {
	return &Response{
		Success:  true,
		Data:     data,
		Metadata: metadataSince(started),
	}
}

func errResponse(err *Error, started time.Time) *Response {
	return &Response{
		Success:  false,
		Error:    err,
		Metadata: metadataSince(started),
	}
}

func metadataSince(started time.Time) Metadata {
	now := time.Now()

	return Metadata{
		LayerID:          layerID,
		LayerName:        layerName,
		ProcessingTimeMs: now.Sub(started).Milliseconds(),
		Timestamp:        now,
	}
}
