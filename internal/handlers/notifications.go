package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

const (
	notificationPageSize = 50
	wsWriteTimeout       = 10 * time.Second
	wsPongWait           = 90 * time.Second
	wsPingInterval       = 30 * time.Second
)

type GetNotificationsResponse struct {
	Success       bool                  `json:"success"`
	Notifications []models.Notification `json:"notifications"`
}

// GetNotifications lists the caller's support alerts and check-ins.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	if deps.Notifications == nil {
		writeJSON(w, http.StatusOK, GetNotificationsResponse{Success: true, Notifications: []models.Notification{}})
		return
	}

	notes, err := deps.Notifications.ListNotifications(r.Context(), userID.String(), notificationPageSize)
	if err != nil {
		writeServiceError(w, err, "Failed to load notifications")
		return
	}
	writeJSON(w, http.StatusOK, GetNotificationsResponse{Success: true, Notifications: notes})
}

var notificationUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts requests without an Origin (non-browser clients) and
// browser requests from an allowed frontend.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range deps.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}

// wsConn serializes writes; gorilla connections allow one writer at a time.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// NotificationsWebSocket streams support alerts to the caller. Browsers pass
// the session token as ?token= since they cannot set headers on upgrade.
func NotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	if deps.Hub == nil {
		writeError(w, http.StatusServiceUnavailable, "Live notifications are not available")
		return
	}

	conn, err := notificationUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &wsConn{conn: conn}
	defer c.Close()

	deps.Hub.Register(userID, c)
	defer deps.Hub.Unregister(userID, c)
	deps.Logger.Debug("notification socket opened", zap.String("user_id", userID.String()))

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop: the client sends nothing meaningful, but reading is what
	// processes pongs and notices the close.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
