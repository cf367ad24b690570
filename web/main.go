package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
