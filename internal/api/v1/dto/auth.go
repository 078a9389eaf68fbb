package dto

// ChallengeRequestDTO asks for a login message to sign.
type ChallengeRequestDTO struct {
	Address string `json:"address" validate:"required"`
}

// ChallengeResponseDTO returns the message the wallet must sign.
type ChallengeResponseDTO struct {
	Message string `json:"message"`
}

// VerifyRequestDTO redeems a signed challenge for a session token.
type VerifyRequestDTO struct {
	Address   string `json:"address" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// SessionResponseDTO carries the issued session token.
type SessionResponseDTO struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresIn int    `json:"expires_in"`
}
