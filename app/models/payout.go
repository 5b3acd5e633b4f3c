package models

import (
	"regexp"
	"strings"
)

// Payout methods.
const (
	PayoutUPI    = "upi"
	PayoutBank   = "bank"
	PayoutPayPal = "paypal"
)

// PayoutDetails carries the fields of whichever method is selected; the
// others stay empty.
type PayoutDetails struct {
	UPIID       string `bson:"upiId,omitempty" json:"upiId,omitempty"`
	BankAccount string `bson:"bankAccount,omitempty" json:"bankAccount,omitempty"`
	IFSC        string `bson:"ifsc,omitempty" json:"ifsc,omitempty"`
	PayPalEmail string `bson:"paypalEmail,omitempty" json:"paypalEmail,omitempty"`
}

// Payout is the tagged variant an artist is paid through.
type Payout struct {
	Method  string        `json:"method"`
	Details PayoutDetails `json:"details"`
}

var (
	upiRE   = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)
	accNoRE = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscRE  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Normalize trims input, upper-cases the IFSC and drops fields that do not
// belong to the method.
func (p Payout) Normalize() Payout {
	m := strings.ToLower(strings.TrimSpace(p.Method))
	d := p.Details
	out := Payout{Method: m}
	switch m {
	case PayoutUPI:
		out.Details.UPIID = strings.TrimSpace(d.UPIID)
	case PayoutBank:
		out.Details.BankAccount = strings.TrimSpace(d.BankAccount)
		out.Details.IFSC = strings.ToUpper(strings.TrimSpace(d.IFSC))
	case PayoutPayPal:
		out.Details.PayPalEmail = strings.TrimSpace(d.PayPalEmail)
	}
	return out
}

// Validate returns per-field messages keyed by JSON path; empty means valid.
func (p Payout) Validate() map[string]string {
	n := p.Normalize()
	errs := map[string]string{}

	switch n.Method {
	case PayoutUPI:
		if !upiRE.MatchString(n.Details.UPIID) {
			errs["details.upiId"] = "A valid UPI ID is required."
		}
	case PayoutBank:
		if !accNoRE.MatchString(n.Details.BankAccount) {
			errs["details.bankAccount"] = "Bank account must be 9 to 18 digits."
		}
		if !ifscRE.MatchString(n.Details.IFSC) {
			errs["details.ifsc"] = "A valid IFSC code is required."
		}
	case PayoutPayPal:
		if !emailRE.MatchString(n.Details.PayPalEmail) {
			errs["details.paypalEmail"] = "A valid PayPal email is required."
		}
	case "":
		errs["method"] = "The method field is required."
	default:
		errs["method"] = "Method must be one of upi, bank, paypal."
	}
	return errs
}
