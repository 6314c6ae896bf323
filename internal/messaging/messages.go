package messaging

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/supporta-app/supporta/internal/db"
)

// SendMessage - send a direct message to another user
func SendMessage(c echo.Context) error {
	senderID, ok := c.Get("user_id").(string)
	if !ok || senderID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	recipientID := c.Param("user_id")
	if recipientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing recipient id"})
	}
	if _, err := uuid.Parse(recipientID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipient id format"})
	}
	if recipientID == senderID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil || body.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	// Recipient must exist
	var exists bool
	err := db.Conn.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, recipientID,
	).Scan(&exists)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify recipient"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
	}

	msgID := uuid.New().String()
	var createdAt time.Time
	err = db.Conn.QueryRow(context.Background(),
		`INSERT INTO messages (id, sender_id, recipient_id, content)
         VALUES ($1, $2, $3, $4) RETURNING created_at`,
		msgID, senderID, recipientID, body.Content,
	).Scan(&createdAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message_id": msgID,
		"created_at": createdAt.UTC().Format(time.RFC3339),
	})
}

// ListConversation - the two-party thread with another user, oldest first
func ListConversation(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	otherID := c.Param("user_id")
	if otherID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}
	if _, err := uuid.Parse(otherID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id format"})
	}

	// Optional since filter for incremental fetches
	sinceStr := c.QueryParam("since")
	var rows pgx.Rows
	var err error
	if sinceStr != "" {
		sinceTime, parseErr := time.Parse(time.RFC3339, sinceStr)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid since timestamp, use RFC3339"})
		}
		rows, err = db.Conn.Query(context.Background(),
			`SELECT id, sender_id, recipient_id, content, created_at
             FROM messages
             WHERE ((sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1))
               AND created_at > $3
             ORDER BY created_at ASC`, userID, otherID, sinceTime,
		)
	} else {
		rows, err = db.Conn.Query(context.Background(),
			`SELECT id, sender_id, recipient_id, content, created_at
             FROM messages
             WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
             ORDER BY created_at ASC`, userID, otherID,
		)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list messages"})
	}
	defer rows.Close()

	type message struct {
		ID          string `json:"id"`
		SenderID    string `json:"sender_id"`
		RecipientID string `json:"recipient_id"`
		Content     string `json:"content"`
		CreatedAt   string `json:"created_at"`
	}

	var msgs []message
	for rows.Next() {
		var m message
		var createdAt time.Time
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &createdAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
		}
		m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list messages"})
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
