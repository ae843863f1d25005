package customer

import (
	"regexp"
	"strings"
	"time"

	"booking-orchestrator/internal/pkg/errs"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

// Profile is what providers need to register a guest and bill a booking
type Profile struct {
	firstName      string
	lastName       string
	email          Email
	documentType   string
	documentNumber string
	birthDate      *time.Time
}

func NewProfile(firstName, lastName, email, documentType, documentNumber string, birthDate *time.Time) (Profile, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Profile{}, errs.Mark(errs.New("first and last name are required"), ErrInvalidProfile)
	}
	e, err := NewEmail(email)
	if err != nil {
		return Profile{}, err
	}
	if strings.TrimSpace(documentNumber) == "" {
		return Profile{}, errs.Mark(errs.New("document number is required"), ErrInvalidProfile)
	}
	return Profile{
		firstName:      firstName,
		lastName:       lastName,
		email:          e,
		documentType:   strings.TrimSpace(documentType),
		documentNumber: strings.TrimSpace(documentNumber),
		birthDate:      birthDate,
	}, nil
}

func (p Profile) FirstName() string      { return p.firstName }
func (p Profile) LastName() string       { return p.lastName }
func (p Profile) FullName() string       { return p.firstName + " " + p.lastName }
func (p Profile) Email() string          { return p.email.Value() }
func (p Profile) DocumentType() string   { return p.documentType }
func (p Profile) DocumentNumber() string { return p.documentNumber }
func (p Profile) BirthDate() *time.Time  { return p.birthDate }

func (p Profile) IsZero() bool {
	return p.email.value == ""
}
