package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
)

/*
|--------------------------------------------------------------------------
| WebSocket Client Registry
|--------------------------------------------------------------------------
*/

type displayClient struct {
	conn         *websocket.Conn
	writeMux     sync.Mutex
	closeChan    chan struct{}
	closed       bool
	lastPongTime time.Time
	id           string
}

var (
	displayClients = make(map[*websocket.Conn]*displayClient)
	displayMutex   sync.RWMutex
	displayCounter uint64 // atomic
	cleanupRunning bool

	// Debounce broadcast — cegah burst DB query
	broadcastTimer   *time.Timer
	broadcastTimerMu sync.Mutex
	broadcastDelay   = 50 * time.Millisecond
)

/*
|--------------------------------------------------------------------------
| WebSocket Handler
|--------------------------------------------------------------------------
*/

// QueueDisplayWS layani satu koneksi layar display. Setiap perubahan
// antrean (submit, serve, complete, cancel) di-push lewat broadcast,
// display tidak perlu polling kalau koneksi ini hidup.
func QueueDisplayWS(c *websocket.Conn) {
	id := atomic.AddUint64(&displayCounter, 1)
	clientID := fmt.Sprintf("display-%d", id)

	client := &displayClient{
		conn:         c,
		closeChan:    make(chan struct{}),
		lastPongTime: time.Now(),
		id:           clientID,
	}

	log.Printf("[display-ws] %s connecting from %s", clientID, c.RemoteAddr())
	registerDisplayClient(c, client)
	defer unregisterDisplayClient(c, clientID)

	c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error {
		client.writeMux.Lock()
		client.lastPongTime = time.Now()
		client.writeMux.Unlock()
		c.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Kirim snapshot awal ke client ini saja
	go func() {
		time.Sleep(100 * time.Millisecond)
		message, err := buildDisplayMessage()
		if err != nil {
			log.Printf("[display-ws] initial data error: %v", err)
			return
		}
		writeToDisplayClient(client, message)
	}()

	// Ping ticker setiap 20 detik
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ticker.C:
				client.writeMux.Lock()
				if client.closed {
					client.writeMux.Unlock()
					return
				}
				c.SetWriteDeadline(time.Now().Add(5 * time.Second))
				err := c.WriteMessage(websocket.PingMessage, nil)
				client.writeMux.Unlock()

				if err != nil {
					log.Printf("[display-ws] %s ping error: %v", clientID, err)
					return
				}
			case <-client.closeChan:
				return
			}
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
			) {
				log.Printf("[display-ws] %s unexpected close: %v", clientID, err)
			} else {
				log.Printf("[display-ws] %s closed normally", clientID)
			}
			return
		}
	}
}

// BroadcastDisplayUpdate dipanggil setiap ada mutasi antrean.
// Pakai debounce 50ms — burst 10 event tetap 1x query DB.
func BroadcastDisplayUpdate() {
	broadcastTimerMu.Lock()
	defer broadcastTimerMu.Unlock()

	if broadcastTimer != nil {
		broadcastTimer.Reset(broadcastDelay)
		return
	}

	broadcastTimer = time.AfterFunc(broadcastDelay, func() {
		broadcastTimerMu.Lock()
		broadcastTimer = nil
		broadcastTimerMu.Unlock()

		broadcastDisplayData()
	})
}

/*
|--------------------------------------------------------------------------
| Client Management
|--------------------------------------------------------------------------
*/

func registerDisplayClient(c *websocket.Conn, client *displayClient) {
	displayMutex.Lock()
	displayClients[c] = client
	totalClients := len(displayClients)
	startCleanup := !cleanupRunning
	if startCleanup {
		cleanupRunning = true
	}
	displayMutex.Unlock()

	log.Printf("[display-ws] %s registered, total: %d", client.id, totalClients)

	if startCleanup {
		go periodicDisplayCleanup()
	}
}

func unregisterDisplayClient(c *websocket.Conn, clientID string) {
	displayMutex.Lock()
	client, exists := displayClients[c]
	if exists {
		client.writeMux.Lock()
		if !client.closed {
			client.closed = true
			close(client.closeChan)
		}
		client.writeMux.Unlock()
		delete(displayClients, c)
	}
	totalClients := len(displayClients)
	displayMutex.Unlock()

	_ = c.Close()
	log.Printf("[display-ws] %s unregistered, total: %d", clientID, totalClients)
}

// periodicDisplayCleanup hapus koneksi mati setiap 30 detik.
func periodicDisplayCleanup() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		displayMutex.Lock()
		if len(displayClients) == 0 {
			cleanupRunning = false
			displayMutex.Unlock()
			log.Println("[display-ws] No clients, stopping cleanup goroutine")
			return
		}
		displayMutex.Unlock()

		now := time.Now()
		var toRemove []*websocket.Conn

		displayMutex.RLock()
		for conn, client := range displayClients {
			client.writeMux.Lock()
			stale := now.Sub(client.lastPongTime) > 90*time.Second
			client.writeMux.Unlock()

			if stale {
				toRemove = append(toRemove, conn)
			}
		}
		displayMutex.RUnlock()

		if len(toRemove) == 0 {
			continue
		}

		displayMutex.Lock()
		for _, conn := range toRemove {
			if client, exists := displayClients[conn]; exists {
				client.writeMux.Lock()
				if !client.closed {
					client.closed = true
					close(client.closeChan)
				}
				client.writeMux.Unlock()
				delete(displayClients, conn)
				conn.Close()
			}
		}
		log.Printf("[display-ws] Cleaned %d dead clients, remaining: %d", len(toRemove), len(displayClients))
		displayMutex.Unlock()
	}
}

/*
|--------------------------------------------------------------------------
| Broadcast Logic
|--------------------------------------------------------------------------
*/

func buildDisplayMessage() ([]byte, error) {
	payload, err := displayPayload()
	if err != nil {
		return nil, fmt.Errorf("displayPayload: %w", err)
	}

	payload["type"] = "display_update"
	payload["timestamp"] = time.Now().Format(time.RFC3339)

	return json.Marshal(payload)
}

func broadcastDisplayData() {
	message, err := buildDisplayMessage()
	if err != nil {
		log.Printf("[display-ws] broadcast error: %v", err)
		return
	}

	displayMutex.RLock()
	clients := make([]*displayClient, 0, len(displayClients))
	for _, client := range displayClients {
		clients = append(clients, client)
	}
	displayMutex.RUnlock()

	if len(clients) == 0 {
		return
	}

	const maxWorkers = 20
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, client := range clients {
		wg.Add(1)
		sem <- struct{}{}
		go func(c *displayClient) {
			defer wg.Done()
			defer func() { <-sem }()
			writeToDisplayClient(c, message)
		}(client)
	}

	wg.Wait()
}

func writeToDisplayClient(c *displayClient, message []byte) {
	c.writeMux.Lock()
	defer c.writeMux.Unlock()

	if c.closed {
		return
	}

	c.conn.SetWriteDeadline(time.Now().Add(3 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		log.Printf("[display-ws] %s write error: %v", c.id, err)
		c.closed = true
		select {
		case <-c.closeChan:
		default:
			close(c.closeChan)
		}

		go func(conn *websocket.Conn, id string) {
			displayMutex.Lock()
			delete(displayClients, conn)
			displayMutex.Unlock()
			conn.Close()
			log.Printf("[display-ws] %s removed after write error", id)
		}(c.conn, c.id)
	}
}
