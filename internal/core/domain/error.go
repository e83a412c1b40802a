package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")
	ErrTransientStore  = errors.New("storage is temporarily unavailable")

	// * Communication errors.
	ErrBadRequest  = errors.New("error parsing request")
	ErrGatewayCall = errors.New("payment gateway call failed")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid phone or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrForbidden                  = errors.New("account does not belong to the channel")

	// * Gateway envelope errors.
	ErrAuthenticationFailure = errors.New("notification signature verification failed")
	ErrDecryptionFailure     = errors.New("notification payload decryption failed")
	ErrVaultUnavailable      = errors.New("secret is unavailable")

	// * Business errors.
	ErrOrderNotFound       = errors.New("order not found")
	ErrAmountMismatch      = errors.New("observed amount differs from order amount")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrBadAmount           = errors.New("amount must be positive")
)
