package response

// StandardApiResponse is the envelope of every JSON reply
type StandardApiResponse struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"` // validation problems or conflict details
	RequestID  string      `json:"request_id,omitempty"`
}
