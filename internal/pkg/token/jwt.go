package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issuer identifica os tokens emitidos por este serviço.
const issuer = "GoInventory"

// TokenService define o contrato para emissão e validação de JWTs.
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims carrega o usuário e a role dentro do JWT, além das
// claims registradas (exp, iat, iss...).
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens HS256 com uma chave simétrica.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	parser    *jwt.Parser
}

// NewService cria o serviço de tokens. O parser é configurado uma única vez:
// só aceita HS256, exige expiração e confere o issuer.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(issuer),
		),
	}
}

// GenerateToken assina um novo JWT contendo o ID e a role do usuário.
func (s *Service) GenerateToken(userID string, userRole string) (string, error) {
	now := time.Now()

	claims := CustomClaims{
		UserID: userID,
		Role:   userRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifica assinatura, expiração e issuer, e devolve as claims.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	parsed, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token inválido")
	}

	return claims, nil
}
