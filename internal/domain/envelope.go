package domain

// Envelope is the response body of every stats endpoint.
type Envelope struct {
	Success bool    `json:"success"`
	Data    Stats   `json:"data"`
	Error   *string `json:"error"`
}

// OK wraps stats in a successful envelope.
func OK(stats Stats) Envelope {
	return Envelope{Success: true, Data: stats}
}

// Fail builds an unsuccessful envelope carrying msg.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: &msg}
}
