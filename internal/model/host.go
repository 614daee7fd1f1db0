package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Host Ведущий игры, единственный, кому разрешено запускать розыгрыш
type Host struct {
	Login string
}

type HostClaims struct {
	jwt.RegisteredClaims
}
