package services

import (
	"errors"

	"idlegrow/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(player *models.PlayerFromAuth) (string, error) {
	claims := jwt.MapClaims{
		"id":            player.ID,
		"username":      player.Username,
		"first_name":    player.FirstName,
		"last_name":     player.LastName,
		"is_premium":    player.IsPremium,
		"language_code": player.LanguageCode,
		"photo_url":     player.PhotoURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.PlayerFromAuth, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}
	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &models.PlayerFromAuth{
		ID:       claims.ID,
		Username: claims.Username,
	}, nil
}
