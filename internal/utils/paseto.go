package utils

import (
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenAudience = "fitout-meister"
	tokenIssuer   = "fitout-identity"
)

// PasetoMaker verarbeitet lokale PASETO-Operationen der Version 4 (symmetrisch).
// Tokens werden vom Identity-Dienst ausgestellt, hier nur geprüft. CreateToken bleibt für Tests und Tools.
type PasetoMaker struct {
	symmetricKey paseto.V4SymmetricKey
}

func NewPasetoMaker(keyHex string) (*PasetoMaker, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid symmetric key: %w", err)
	}

	return &PasetoMaker{symmetricKey: key}, nil
}

// GenerateSymmetricKey erzeugt einen neuen V4-Schlüssel als Hex-String.
func GenerateSymmetricKey() string {
	key := paseto.NewV4SymmetricKey()
	return hex.EncodeToString(key.ExportBytes())
}

type TokenClaims struct {
	UserID    string
	OrgID     string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

func (m *PasetoMaker) CreateToken(claims TokenClaims, duration time.Duration) string {
	now := time.Now()
	token := paseto.NewToken()

	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetAudience(tokenAudience)
	token.SetIssuer(tokenIssuer)
	token.SetSubject(claims.UserID)
	token.SetJti(claims.SessionID)

	token.SetString("org_id", claims.OrgID)
	token.SetString("email", claims.Email)

	return token.V4Encrypt(m.symmetricKey, nil)
}

// VerifyToken entschlüsselt und prüft das Token. Rolle und Name kommen nicht aus dem Token,
// sondern aus der users-Tabelle, damit Rollenwechsel sofort greifen.
func (m *PasetoMaker) VerifyToken(tokenString string) (*TokenClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.ValidAt(time.Now()))

	parsed, err := parser.ParseV4Local(m.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("token decryption/verification failed: %w", err)
	}

	userID, err := parsed.GetSubject()
	if err != nil || userID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	orgID, _ := parsed.GetString("org_id")
	email, _ := parsed.GetString("email")
	jti, _ := parsed.GetJti()
	exp, _ := parsed.GetExpiration()

	return &TokenClaims{
		UserID:    userID,
		OrgID:     orgID,
		Email:     email,
		SessionID: jti,
		ExpiresAt: exp,
	}, nil
}
