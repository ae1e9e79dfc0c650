package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:10000", "Server address")
	host := flag.String("host", "", "Tenant host, e.g. acme.localhost (selects the tenant schema)")
	token := flag.String("token", "", "Access token issued for the tenant")
	flag.Parse()

	if *token == "" {
		log.Fatal("Usage: stream_client -host <tenant host> -token <JWT_TOKEN>")
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/api/v1/item-stream"}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+*token)
	if *host != "" {
		header.Set("Host", *host)
	}

	fmt.Printf("Connecting to %s...\n", u.String())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for item events...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			fmt.Printf("%s\n", string(message))
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
