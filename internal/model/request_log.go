package model

// RequestLog records a request answered by a dynamically registered route.
// Timestamp is RFC 3339 encoded.
type RequestLog struct {
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
}
