// Command devtoken mints an HS256 session token for local development, so
// the client can sign in without a hosted identity provider. The token is
// accepted by a server running with the same GOPHDRIVE_JWT_SECRET and no
// issuer check.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/envx"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
)

func main() {
	_ = envx.Load()

	sub := flag.String("sub", "", "user id to put in the sub claim (required)")
	secret := flag.String("secret", envx.String("GOPHDRIVE_JWT_SECRET", "secretKey"), "HS256 signing secret")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *sub == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, err := auth.GenerateToken(*sub, []byte(*secret), *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
