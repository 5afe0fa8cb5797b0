package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type OffersResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data []Offer `json:"data"`
}

type Offer struct {
	Type   string     `json:"type"`
	ID     string     `json:"id"`
	Source string     `json:"source"`
	Price  OfferPrice `json:"price"`
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

type apiError struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := strings.ToUpper(q.Get("originLocationCode"))
	destination := strings.ToUpper(q.Get("destinationLocationCode"))
	date := q.Get("departureDate")

	if len(origin) != 3 || len(destination) != 3 {
		writeErrors(w, http.StatusBadRequest, "INVALID FORMAT", "location codes must be 3 letters")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeErrors(w, http.StatusBadRequest, "INVALID FORMAT", "departureDate must be YYYY-MM-DD")
		return
	}

	switch destination {
	case "ERR":
		writeErrors(w, http.StatusInternalServerError, "SYSTEM ERROR HAS OCCURRED", "simulated provider failure")
		return
	case "SLO":
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
			return
		}
	}

	limit, err := strconv.Atoi(q.Get("max"))
	if err != nil || limit <= 0 || limit > 250 {
		limit = 5
	}
	currency := q.Get("currencyCode")
	if currency == "" {
		currency = "INR"
	}

	var resp OffersResponse
	resp.Data = make([]Offer, 0, limit)
	if destination != "NIL" {
		base := routeFare(origin, destination, date)
		for i := 0; i < limit; i++ {
			total := fmt.Sprintf("%.2f", base*(1+0.07*float64(i)))
			if destination == "BAD" {
				total = "n/a"
			}
			resp.Data = append(resp.Data, Offer{
				Type:   "flight-offer",
				ID:     strconv.Itoa(i + 1),
				Source: "GDS",
				Price: OfferPrice{
					Currency:   currency,
					Total:      total,
					Base:       total,
					GrandTotal: total,
				},
			})
		}
	}
	resp.Meta.Count = len(resp.Data)

	w.Header().Set("Content-Type", "application/vnd.amadeus+json")
	json.NewEncoder(w).Encode(resp)
}

// routeFare gives every route and date a stable price between 3000 and 12000.
func routeFare(origin, destination, date string) float64 {
	h := fnv.New32a()
	h.Write([]byte(origin + destination + date))
	return 3000 + float64(h.Sum32()%900000)/100
}

func writeErrors(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string][]apiError{
		"errors": {{Status: status, Code: status, Title: title, Detail: detail}},
	})
}
