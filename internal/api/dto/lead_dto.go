package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/launch-watch/internal/domain"
)

// Append endpoint response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageLeadSaved is returned for every successful append.
const MessageLeadSaved = "Lead saved successfully"

// ProbeMessage identifies the append endpoint on GET.
const ProbeMessage = "NCR Launch Watch Form Handler - Use POST to submit data"

var errNotObject = errors.New("payload must be a JSON object")

// FlexString accepts a JSON string, number, boolean or null. Falsy values decode to "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		*f = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case 'n':
		*f = ""
	case 't':
		*f = "true"
	case 'f':
		*f = ""
	case '{', '[':
		return fmt.Errorf("expected a scalar value, got %s", raw[:1])
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		v, err := n.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		if v == 0 {
			*f = ""
			return nil
		}
		*f = FlexString(formatNumber(v))
	}
	return nil
}

// formatNumber renders v the way JavaScript's String(number) does: plain decimal for
// 1e-6 <= |v| < 1e21, otherwise exponent form without exponent padding.
func formatNumber(v float64) string {
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

// LeadPayload is the body posted by the capture form. Every field is optional.
type LeadPayload struct {
	Timestamp FlexString `json:"timestamp"`
	FullName  FlexString `json:"fullName"`
	Email     FlexString `json:"email"`
	Phone     FlexString `json:"phone"`
	Role      FlexString `json:"role"`
	Terms     FlexString `json:"terms"`
}

// LeadRequest is the outbound shape the capture client sends.
type LeadRequest struct {
	Timestamp string `json:"timestamp"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Terms     string `json:"terms"`
}

// AppendResponse is the JSON envelope returned by POST /leads.
type AppendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DecodeLeadPayload parses body as a JSON object using the supplied decoder. Only the exact wire
// keys are read; every other key, including case variants of the wire keys, is ignored.
func DecodeLeadPayload(body []byte, decode utils.JSONUnmarshal) (LeadPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return LeadPayload{}, errors.New("empty request body")
	}
	if trimmed[0] != '{' {
		return LeadPayload{}, errNotObject
	}
	if decode == nil {
		decode = json.Unmarshal
	}
	var fields map[string]json.RawMessage
	if err := decode(trimmed, &fields); err != nil {
		return LeadPayload{}, err
	}

	var payload LeadPayload
	for key, dst := range map[string]*FlexString{
		"timestamp": &payload.Timestamp,
		"fullName":  &payload.FullName,
		"email":     &payload.Email,
		"phone":     &payload.Phone,
		"role":      &payload.Role,
		"terms":     &payload.Terms,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := dst.UnmarshalJSON(raw); err != nil {
			return LeadPayload{}, fmt.Errorf("field %s: %w", key, err)
		}
	}
	return payload, nil
}

// ToDomain converts the payload into an unnormalised lead.
func (p LeadPayload) ToDomain() domain.Lead {
	return domain.Lead{
		Timestamp:     string(p.Timestamp),
		FullName:      string(p.FullName),
		Email:         string(p.Email),
		Phone:         string(p.Phone),
		Role:          string(p.Role),
		TermsAccepted: string(p.Terms),
	}
}

// NewLeadRequest builds the wire body for a lead.
func NewLeadRequest(lead domain.Lead) LeadRequest {
	return LeadRequest{
		Timestamp: lead.Timestamp,
		FullName:  lead.FullName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Role:      lead.Role,
		Terms:     lead.TermsAccepted,
	}
}
