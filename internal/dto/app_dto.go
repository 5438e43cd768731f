package dto

type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	// LatencyMs is only set when the database was pinged.
	LatencyMs int64 `json:"latency_ms,omitempty"`
}
