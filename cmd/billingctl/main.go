package main

import (
	"github.com/joho/godotenv"

	"github.com/billops/billingctl/internal/cli"
	"github.com/billops/billingctl/internal/common/logtrace"
)

func main() {
	// optional .env for BILLING_SERVER_URL and friends
	godotenv.Load()
	logtrace.InitLogger()
	cli.Execute()
}
