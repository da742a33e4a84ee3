package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// MessageResponse is returned by write operations that have nothing else to report
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse is the result of processing an uploaded curriculum
type UploadResponse struct {
	Message string  `json:"message"`
	Profile Profile `json:"profile"`
}

// ProfileUpdateResponse is returned after a profile edit
type ProfileUpdateResponse struct {
	Message string        `json:"message"`
	Profile ProfileRecord `json:"profile"`
}
