package main

import (
	"flag"
	"log"

	"pointcard/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	if err := a.Run(flag.Args()); err != nil {
		log.Fatal(err)
	}
}
