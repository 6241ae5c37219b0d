// Package capture implements the client side of lead capture: turning a submitted form into a
// lead record, posting it to the append endpoint and deciding what the visitor sees.
package capture

import (
	"net/url"
	"time"

	"github.com/spec-kit/launch-watch/internal/domain"
)

// Form field names used by the landing page.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldRole     = "role"
	FieldTerms    = "terms"
)

// Form is the raw newsletter form as submitted by a visitor.
type Form struct {
	FullName string
	Email    string
	Phone    string
	Role     string
	Terms    bool
}

// FormFromValues reads a submitted form. An unchecked checkbox is simply absent.
func FormFromValues(values url.Values) Form {
	return Form{
		FullName: values.Get(FieldFullName),
		Email:    values.Get(FieldEmail),
		Phone:    values.Get(FieldPhone),
		Role:     values.Get(FieldRole),
		Terms:    values.Get(FieldTerms) != "",
	}
}

// Lead builds the fully populated record stamped with now.
func (f Form) Lead(now time.Time) domain.Lead {
	return domain.NormalizeLead(domain.Lead{
		Timestamp:     domain.FormatTimestamp(now),
		FullName:      f.FullName,
		Email:         f.Email,
		Phone:         f.Phone,
		Role:          f.Role,
		TermsAccepted: domain.TermsAnswer(f.Terms),
	}, now)
}
