package models

// Profile represents the identity claims fetched from any provider
type Profile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}
