package models

import "strings"

// Submission is one contact-form post. It lives for a single request.
type Submission struct {
	FullName string `json:"fullName" form:"fullName" validate:"required" desc:"Name of the person getting in touch" ex:"Ada Lovelace"`
	Email    string `json:"email" form:"email" validate:"required" desc:"Address to reply to" ex:"ada@example.com"`
	Phone    string `json:"phone,omitempty" form:"phone" desc:"Optional phone number" ex:"+44 20 7946 0958"`
	Subject  string `json:"subject,omitempty" form:"subject" desc:"Optional subject line" ex:"Project enquiry"`
	Message  string `json:"message" form:"message" validate:"required" desc:"Message body" ex:"Hello, I'd like to talk about a project."`
}

// Normalize returns a copy with surrounding whitespace removed from every field,
// so blank input is treated the same as missing input.
func (s Submission) Normalize() Submission {
	return Submission{
		FullName: strings.TrimSpace(s.FullName),
		Email:    strings.TrimSpace(s.Email),
		Phone:    strings.TrimSpace(s.Phone),
		Subject:  strings.TrimSpace(s.Subject),
		Message:  strings.TrimSpace(s.Message),
	}
}
