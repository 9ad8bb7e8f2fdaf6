package main

import (
	"log"

	"github.com/hackagra/mindverse-api/app"
)

func main() {
	if err := app.SetupAndRunServer(); err != nil {
		log.Fatal(err)
	}
}
