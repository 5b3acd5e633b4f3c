package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDefaults(t *testing.T) {
	u := NewUser(" aanya ", "", "", "hash")

	assert.Equal(t, "aanya", u.Name)
	assert.Equal(t, RoleVisitor, u.Role)
	assert.Equal(t, StatusActive, u.Status)
	assert.Equal(t, Notifications{Email: true, SMS: false, ProductUpdates: true}, u.Notifications)
	assert.Equal(t, Privacy{ProfileVisibility: VisibilityPublic, ShowSoldPrices: true}, u.Privacy)
}

func TestPatchKeepsOmittedFields(t *testing.T) {
	u := NewUser("aanya", "a@kalaghar.in", RoleArtist, "hash")
	u.Bio = "Painter from Jaipur"

	photo := "https://cdn/p.jpg"
	sms := true
	UserPatch{Photo: &photo, Notifications: &NotificationsPatch{SMS: &sms}}.Apply(u)

	assert.Equal(t, "https://cdn/p.jpg", u.Photo)
	assert.Equal(t, "Painter from Jaipur", u.Bio)
	assert.Equal(t, "a@kalaghar.in", u.Email)
	assert.Equal(t, Notifications{Email: true, SMS: true, ProductUpdates: true}, u.Notifications)
	assert.Equal(t, VisibilityPublic, u.Privacy.ProfileVisibility)
}

func TestPatchPayoutDropsForeignFields(t *testing.T) {
	u := NewUser("aanya", "", RoleArtist, "hash")
	UserPatch{Payout: &Payout{
		Method:  "BANK",
		Details: PayoutDetails{BankAccount: "123456789012", IFSC: "sbin0001234", UPIID: "stale@upi"},
	}}.Apply(u)

	assert.Equal(t, PayoutBank, u.PayoutMethod)
	assert.Equal(t, &PayoutDetails{BankAccount: "123456789012", IFSC: "SBIN0001234"}, u.PayoutDetails)
}

func TestPayoutValidate(t *testing.T) {
	cases := []struct {
		name   string
		payout Payout
		field  string
	}{
		{"upi ok", Payout{Method: "upi", Details: PayoutDetails{UPIID: "aanya@okaxis"}}, ""},
		{"upi missing", Payout{Method: "upi"}, "details.upiId"},
		{"bank ok", Payout{Method: "bank", Details: PayoutDetails{BankAccount: "123456789", IFSC: "HDFC0000123"}}, ""},
		{"bank bad ifsc", Payout{Method: "bank", Details: PayoutDetails{BankAccount: "123456789", IFSC: "HDFC123"}}, "details.ifsc"},
		{"paypal ok", Payout{Method: "paypal", Details: PayoutDetails{PayPalEmail: "a@b.com"}}, ""},
		{"paypal bad", Payout{Method: "paypal", Details: PayoutDetails{PayPalEmail: "nope"}}, "details.paypalEmail"},
		{"unknown method", Payout{Method: "cheque"}, "method"},
		{"no method", Payout{}, "method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.payout.Validate()
			if tc.field == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	role := RoleAdmin
	p := UserPatch{Role: &role}
	assert.False(t, p.Empty())
	assert.True(t, p.TouchesLoginKey())
}
