package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vfg2006/opportunity-loss-api/internal/config"
	"github.com/vfg2006/opportunity-loss-api/internal/usecases/authenticating"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

// Emite um token de operador para o console quando AUTH_SECRET está definido
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	operator := flag.String("operator", "", "identificação do operador (obrigatório)")
	ttl := flag.Duration("ttl", cfg.Auth.TokenTTL, "validade do token")
	flag.Parse()

	authenticator := authenticating.NewService(cfg.Auth)

	token, err := authenticator.IssueToken(*operator, *ttl)
	if err != nil {
		log.L.WithError(err).Error("token: not issued")
		os.Exit(1)
	}

	fmt.Println(token)
}
