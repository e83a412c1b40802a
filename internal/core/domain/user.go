package domain

import "time"

// User is a service account owned by a channel partner.
type User struct {
	ID           string
	Username     string
	ChannelName  string
	PasswordHash string
	// PasswordEnc is the vault token of the generated password.
	PasswordEnc string
	CreatedAt   time.Time
}

// AccountSummary is a per-account aggregation for dealer listings.
type AccountSummary struct {
	UserID         string
	Username       string
	PasswordEnc    string
	Balance        int64
	LastRechargeAt *time.Time
}

type ServiceStatus string

const (
	ServiceActive  ServiceStatus = "ACTIVE"
	ServicePending ServiceStatus = "PENDING"
)

type Profile struct {
	UserID      string
	Username    string
	ChannelName string
	Balance     int64
	Status      ServiceStatus
}

// Partner is a channel partner (dealer) that sells accounts.
type Partner struct {
	ID           int64
	Phone        string
	PasswordHash string
	ChannelName  string
}
