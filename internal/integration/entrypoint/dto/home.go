package dto

// ServiceInfoResponse describes the service on the root route.
type ServiceInfoResponse struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
