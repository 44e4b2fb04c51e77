package auth

import (
	"time"
)

// DemoUsername is the subject for challenge tokens.
// The API has no user accounts; /auth/jwt issues a token for this identity.
const DemoUsername = "demo-user"

// Service provides token issuance for the API.
type Service struct {
	jwt *JWTService
}

// NewService creates a new auth service.
func NewService(jwt *JWTService) *Service {
	return &Service{jwt: jwt}
}

// IssueToken generates an access token for the demo identity.
func (s *Service) IssueToken() (string, time.Time, error) {
	return s.jwt.GenerateAccessToken(DemoUsername)
}
