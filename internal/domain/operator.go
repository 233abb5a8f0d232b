package domain

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims são as claims do token emitido para operadores do console
type OperatorClaims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}
