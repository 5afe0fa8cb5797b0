package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// Local stand-in for the flight offers provider. Point AMADEUS_BASE_URL at it
// and set any AMA_CLIENT_ID / AMA_CLIENT_SECRET pair.
//
// Special destination codes drive the failure paths:
//
//	ERR  answers 500
//	NIL  answers with no offers
//	BAD  answers with an unparseable price
//	SLO  answers after 10s
func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	tokens := newTokenIssuer()

	http.HandleFunc("/v1/security/oauth2/token", tokens.TokenHandler)
	http.HandleFunc("/v2/shopping/flight-offers", tokens.RequireToken(FlightOffersHandler))

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock flight offers provider running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
