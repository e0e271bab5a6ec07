package main

import (
	_ "github.com/joho/godotenv/autoload"

	"folio/cmd/folio-cli/cmd"
)

func main() {
	cmd.Execute()
}
