package main

import (
	"log"

	"rollhouse/internal/app"
)

func main() {
	server := app.NewServer()
	log.Fatal(server.Start())
}
