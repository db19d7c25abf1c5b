package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/models"
)

// AlertChannelPrefix is followed by the recipient's user id.
const AlertChannelPrefix = "support:user:"

// NotificationEvent is the payload sent over Redis and WebSocket.
type NotificationEvent struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

// NotificationConn is the minimal interface our WebSocket implementation must satisfy.
type NotificationConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// NotificationHub fans alerts out to the WebSocket connections of this
// instance. A user may hold several connections (one per tab).
type NotificationHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]map[NotificationConn]struct{}
	redis       *redis.Client
	logger      *zap.Logger
	started     sync.Once
}

// NewNotificationHub creates a hub. With a nil client, PublishAlert delivers
// to local connections directly instead of going through Redis.
func NewNotificationHub(client *redis.Client, logger *zap.Logger) *NotificationHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHub{
		connections: make(map[uuid.UUID]map[NotificationConn]struct{}),
		redis:       client,
		logger:      logger,
	}
}

// Register adds a connection for userID.
func (h *NotificationHub) Register(userID uuid.UUID, conn NotificationConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.connections[userID]
	if !ok {
		conns = make(map[NotificationConn]struct{})
		h.connections[userID] = conns
	}
	conns[conn] = struct{}{}
}

// Unregister removes a connection for userID.
func (h *NotificationHub) Unregister(userID uuid.UUID, conn NotificationConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.connections[userID]
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.connections, userID)
	}
}

// ConnectionCount returns the number of live connections for userID.
func (h *NotificationHub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID])
}

// FanOut writes the event to every local connection of the recipient.
func (h *NotificationHub) FanOut(event NotificationEvent) {
	recipient, err := uuid.Parse(event.Notification.RecipientID)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[recipient] {
		// Non-blocking best-effort send.
		go func(c NotificationConn) {
			if err := c.WriteJSON(event); err != nil {
				h.logger.Debug("error writing notification to websocket", zap.Error(err))
			}
		}(conn)
	}
}

func (h *NotificationHub) PublishAlert(ctx context.Context, note models.Notification) error {
	event := NotificationEvent{Type: string(note.Kind), Notification: note}
	if h.redis == nil {
		h.FanOut(event)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.redis.Publish(ctx, AlertChannelPrefix+note.RecipientID, data).Err()
}

// Start runs the shared Redis listener until ctx is done. Calling it more
// than once has no effect.
func (h *NotificationHub) Start(ctx context.Context) {
	if h.redis == nil {
		return
	}
	h.started.Do(func() {
		go h.runSubscriber(ctx)
	})
}

func (h *NotificationHub) runSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := h.redis.PSubscribe(ctx, AlertChannelPrefix+"*")
			defer pubsub.Close()

			h.logger.Info("notification subscriber started", zap.String("pattern", AlertChannelPrefix+"*"))

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					h.logger.Warn("redis subscriber error", zap.Error(err), zap.Duration("backoff", backoff))
					select {
					case <-time.After(backoff):
					case <-ctx.Done():
					}
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event NotificationEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					h.logger.Warn("failed to unmarshal notification event", zap.Error(err))
					continue
				}
				if event.Notification.RecipientID == "" {
					event.Notification.RecipientID = strings.TrimPrefix(msg.Channel, AlertChannelPrefix)
				}

				h.FanOut(event)
			}
		}()
	}
}
