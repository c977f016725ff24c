package responses

// HealthData is the payload of the health endpoint.
type HealthData struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Entities int    `json:"entities"`
}

// AppInfo is the payload of the root banner endpoint.
type AppInfo struct {
	Application string   `json:"application"`
	Version     string   `json:"version"`
	Status      string   `json:"status"`
	Timestamp   string   `json:"timestamp"`
	Routes      []string `json:"routes"`
}
