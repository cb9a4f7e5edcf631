// Package contact validates the contact and quote request forms and hands
// accepted submissions to a Submitter.
package contact

import (
	"errors"
	"html"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Kind distinguishes the two public forms.
type Kind string

const (
	KindContact Kind = "contact"
	KindQuote   Kind = "quote"
)

const (
	maxNameLength    = 120
	maxSubjectLength = 200
	maxMessageLength = 5000
	maxPhoneLength   = 32
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("contact: invalid submission")

// ContactForm is the general enquiry form on /contact.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// QuoteRequest is the quote form on a gallery detail page.
type QuoteRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalid.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Field returns the message for name, if any.
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var strict = bluemonday.StrictPolicy()

// clean strips markup and surrounding whitespace. The result is plain text;
// entities produced by the sanitizer are decoded again so templates escape
// them exactly once.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Normalize returns a copy with markup stripped from every field.
func (f ContactForm) Normalize() ContactForm {
	return ContactForm{
		Name:    clean(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: clean(f.Subject),
		Message: clean(f.Message),
	}
}

// Validate checks a normalized form.
func (f ContactForm) Validate() error {
	v := &ValidationError{}
	requireText(v, "name", f.Name, maxNameLength)
	requireEmail(v, "email", f.Email)
	requireText(v, "subject", f.Subject, maxSubjectLength)
	requireText(v, "message", f.Message, maxMessageLength)
	return v.orNil()
}

// Normalize returns a copy with markup stripped from every field.
func (q QuoteRequest) Normalize() QuoteRequest {
	return QuoteRequest{
		Category: strings.TrimSpace(q.Category),
		Name:     clean(q.Name),
		Email:    strings.TrimSpace(q.Email),
		Phone:    clean(q.Phone),
	}
}

// Validate checks a normalized quote request. Every field is required.
func (q QuoteRequest) Validate() error {
	v := &ValidationError{}
	if q.Category == "" {
		v.add("category", "Choose a gallery.")
	}
	requireText(v, "name", q.Name, maxNameLength)
	requireEmail(v, "email", q.Email)
	requireText(v, "phone", q.Phone, maxPhoneLength)
	if !validPhone(q.Phone) {
		v.add("phone", "Enter a valid phone number.")
	}
	return v.orNil()
}

func requireText(v *ValidationError, field, value string, max int) {
	switch {
	case value == "":
		v.add(field, "This field is required.")
	case utf8.RuneCountInString(value) > max:
		v.add(field, "This field is too long.")
	}
}

func requireEmail(v *ValidationError, field, value string) {
	if value == "" {
		v.add(field, "This field is required.")
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndexByte(value, '@')+1:], ".") {
		v.add(field, "Enter a valid email address.")
	}
}

func validPhone(s string) bool {
	if len(s) > maxPhoneLength {
		return false
	}
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7
}
