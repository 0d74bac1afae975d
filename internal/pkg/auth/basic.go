package auth

import (
	"encoding/base64"
	"strings"

	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

// BasicScheme is the only authorization scheme accepted on resource routes.
// The comparison is case-sensitive.
const BasicScheme = "Basic"

// BasicCredential is a decoded email/password pair from an Authorization header.
type BasicCredential struct {
	Email    string
	Password string
}

// ParseBasicHeader decodes an Authorization header of the form
// "Basic base64(email:password)".
//
// An empty header yields ErrAuthHeaderMissing, a scheme other than exactly
// "Basic" yields ErrUnsupportedAuthScheme, and undecodable payloads or
// payloads without a ':' separator yield ErrMalformedAuthHeader.
func ParseBasicHeader(header string) (BasicCredential, error) {
	if header == "" {
		return BasicCredential{}, apperrors.ErrAuthHeaderMissing
	}

	scheme, encoded, found := strings.Cut(header, " ")
	if !found {
		return BasicCredential{}, apperrors.ErrMalformedAuthHeader
	}
	if scheme != BasicScheme {
		return BasicCredential{}, apperrors.ErrUnsupportedAuthScheme
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return BasicCredential{}, apperrors.ErrMalformedAuthHeader
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return BasicCredential{}, apperrors.ErrMalformedAuthHeader
	}

	return BasicCredential{Email: email, Password: password}, nil
}

// EncodeBasicCredential builds the header value for an email/password pair.
// Used by tests and by clients of the API.
func EncodeBasicCredential(email, password string) string {
	return BasicScheme + " " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
