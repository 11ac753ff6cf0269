// Tableside Kitchen Receiver Example
//
// This is a minimal example of how to receive and verify Tableside
// order notifications.
//
// Usage:
//   export KITCHEN_WEBHOOK_SECRET="your_secret_here"
//   go run main.go
//
// Then start the API with KITCHEN_WEBHOOK_URL=http://localhost:9000/orders

package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

// OrderEvent is the payload Tableside delivers when an order is placed.
type OrderEvent struct {
	Event string `json:"event"`
	Order struct {
		ID    string `json:"id"`
		Total string `json:"total"`
		Lines []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
	} `json:"order"`
}

func main() {
	secret := os.Getenv("KITCHEN_WEBHOOK_SECRET")
	if secret == "" {
		log.Fatal("KITCHEN_WEBHOOK_SECRET environment variable is required")
	}

	http.HandleFunc("/orders", orderHandler(secret))
	http.HandleFunc("/health", healthHandler)

	log.Println("Starting kitchen receiver on :9000")
	log.Println("Endpoint: http://localhost:9000/orders")
	log.Fatal(http.ListenAndServe(":9000", nil))
}

func orderHandler(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("Error reading body: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		signature := r.Header.Get("X-Tableside-Signature")
		timestamp := r.Header.Get("X-Tableside-Timestamp")
		if signature == "" || timestamp == "" {
			log.Println("Missing signature headers")
			http.Error(w, "Missing signature", http.StatusUnauthorized)
			return
		}

		if !verifySignature(signature, timestamp, body, secret) {
			log.Println("Invalid signature")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		var event OrderEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Printf("Error parsing JSON: %v", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		log.Printf("✓ Received %s for order %s (total %s)", event.Event, event.Order.ID, event.Order.Total)
		for _, line := range event.Order.Lines {
			log.Printf("  %dx %s", line.Quantity, line.Name)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "received"})
	}
}

// verifySignature verifies the HMAC-SHA256 signature from Tableside.
//
// Signed payload: {timestamp}.{body}
func verifySignature(signature, timestamp string, body []byte, secret string) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	// ±5 min tolerance
	if math.Abs(float64(time.Now().Unix()-ts)) > 300 {
		log.Println("Signature timestamp too old or in future")
		return false
	}

	signedPayload := timestamp + "." + string(body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
