package models

import (
	"strings"
	"time"
)

// Roles.
const (
	RoleVisitor = "Visitor"
	RoleArtist  = "Artist"
	RoleAdmin   = "Admin"
)

// Account statuses.
const (
	StatusActive  = "Active"
	StatusBlocked = "Blocked"
)

// Profile visibility levels.
const (
	VisibilityPublic     = "public"
	VisibilityCollectors = "collectors"
	VisibilityPrivate    = "private"
)

func ValidRole(r string) bool {
	return r == RoleVisitor || r == RoleArtist || r == RoleAdmin
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusBlocked
}

func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityCollectors || v == VisibilityPrivate
}

// User is a gallery account. (Name, Role) is the login key and is unique.
type User struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Name          string         `gorm:"size:255;not null;uniqueIndex:idx_users_name_role" json:"name"`
	Email         string         `gorm:"size:255" json:"email"`
	PasswordHash  string         `gorm:"size:255;not null" json:"-"` // argon2id, never serialised
	Role          string         `gorm:"size:20;not null;uniqueIndex:idx_users_name_role" json:"role"`
	Status        string         `gorm:"size:20;not null" json:"status"`
	Photo         string         `gorm:"size:1024" json:"photo"`
	Bio           string         `gorm:"type:text" json:"bio"`
	PayoutMethod  string         `gorm:"size:20" json:"payoutMethod,omitempty"`
	PayoutDetails *PayoutDetails `gorm:"serializer:json" json:"payoutDetails,omitempty"`
	Notifications Notifications  `gorm:"embedded;embeddedPrefix:notify_" json:"notifications"`
	Privacy       Privacy        `gorm:"embedded;embeddedPrefix:privacy_" json:"privacy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewUser returns an Active user with the default settings.
func NewUser(name, email, role, passwordHash string) *User {
	if role == "" {
		role = RoleVisitor
	}
	return &User{
		Name:          strings.TrimSpace(name),
		Email:         strings.TrimSpace(email),
		Role:          role,
		Status:        StatusActive,
		PasswordHash:  passwordHash,
		Notifications: DefaultNotifications(),
		Privacy:       DefaultPrivacy(),
	}
}

// Notifications are the user's contact preferences.
type Notifications struct {
	Email          bool `bson:"email" json:"email"`
	SMS            bool `bson:"sms" json:"sms"`
	ProductUpdates bool `bson:"productUpdates" json:"productUpdates"`
}

func DefaultNotifications() Notifications {
	return Notifications{Email: true, SMS: false, ProductUpdates: true}
}

type Privacy struct {
	ProfileVisibility string `gorm:"size:20" bson:"profileVisibility" json:"profileVisibility"`
	ShowSoldPrices    bool   `bson:"showSoldPrices" json:"showSoldPrices"`
}

func DefaultPrivacy() Privacy {
	return Privacy{ProfileVisibility: VisibilityPublic, ShowSoldPrices: true}
}

// ─── Patches ─────────────────────────────────────────────────────────────────

// UserPatch lists the fields an update touches. Nil fields are left as they
// are.
type UserPatch struct {
	Name          *string
	Email         *string
	Photo         *string
	Bio           *string
	PasswordHash  *string
	Role          *string
	Status        *string
	Payout        *Payout
	Notifications *NotificationsPatch
	Privacy       *PrivacyPatch
}

type NotificationsPatch struct {
	Email          *bool `json:"email"`
	SMS            *bool `json:"sms"`
	ProductUpdates *bool `json:"productUpdates"`
}

type PrivacyPatch struct {
	ProfileVisibility *string `json:"profileVisibility" validate:"nullable,oneof=public collectors private"`
	ShowSoldPrices    *bool   `json:"showSoldPrices"`
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Photo == nil && p.Bio == nil &&
		p.PasswordHash == nil && p.Role == nil && p.Status == nil &&
		p.Payout == nil && p.Notifications == nil && p.Privacy == nil
}

// TouchesLoginKey reports whether the patch may change (Name, Role).
func (p UserPatch) TouchesLoginKey() bool { return p.Name != nil || p.Role != nil }

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	setString(&u.Name, p.Name)
	setString(&u.Email, p.Email)
	setString(&u.Photo, p.Photo)
	setString(&u.Bio, p.Bio)
	setString(&u.PasswordHash, p.PasswordHash)
	setString(&u.Role, p.Role)
	setString(&u.Status, p.Status)

	if p.Payout != nil {
		n := p.Payout.Normalize()
		u.PayoutMethod = n.Method
		d := n.Details
		u.PayoutDetails = &d
	}
	if n := p.Notifications; n != nil {
		setBool(&u.Notifications.Email, n.Email)
		setBool(&u.Notifications.SMS, n.SMS)
		setBool(&u.Notifications.ProductUpdates, n.ProductUpdates)
	}
	if pv := p.Privacy; pv != nil {
		setString(&u.Privacy.ProfileVisibility, pv.ProfileVisibility)
		setBool(&u.Privacy.ShowSoldPrices, pv.ShowSoldPrices)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
