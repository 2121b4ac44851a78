package main

import (
	"log"

	"pointcard/internal/stubapi"
)

func main() {
	server, err := stubapi.NewServer()
	if err != nil {
		log.Fatal(err)
	}
	defer server.Close()

	if err := server.Run(); err != nil {
		log.Fatal(err)
	}
}
