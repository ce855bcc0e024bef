package models

// Response is the JSON envelope returned by the contact endpoint
type Response struct {
	Success bool   `json:"success" desc:"Whether the message was handed to the mail service" ex:"true"`
	Message string `json:"message" desc:"Human readable outcome" ex:"Email sent successfully!"`
	Error   string `json:"error,omitempty" desc:"Delivery failure detail, development mode only"`
}

// Status is the payload of the root route
type Status struct {
	Status    string `json:"status" desc:"Service banner" ex:"Portfolio Backend API is running!"`
	Timestamp string `json:"timestamp" desc:"Server time (RFC 3339)" ex:"2024-05-01T12:00:00Z"`
}

// Health is the payload of the health check route
type Health struct {
	Status    string `json:"status" desc:"Always healthy while the process serves requests" ex:"healthy"`
	Service   string `json:"service" desc:"Service name" ex:"portfolio-backend"`
	Timestamp string `json:"timestamp" desc:"Server time (RFC 3339)" ex:"2024-05-01T12:00:00Z"`
}
