// Command mint-token prints a bearer token signed with JWT_SECRET, for
// calling the API from scripts and local clients.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/eventpill-api/internal/config"
	jwtinfra "github.com/eventpill-api/internal/infrastructure/jwt"
)

func main() {
	subject := pflag.StringP("subject", "s", jwtinfra.DefaultSubject, "token subject (userId claim)")
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	p, err := jwtinfra.NewProvider(config.Load().JWTSecret)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	token, err := p.Issue(*subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
