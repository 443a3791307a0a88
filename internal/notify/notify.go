// Package notify delivers user notifications out of band. Every notification
// is stored durably; Telegram delivery is best effort on top.
package notify

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/repository"
)

const telegramAPIBase = "https://api.telegram.org"

// Dispatcher stores a notification row and, when the user has linked a
// Telegram chat, pushes the message there in the background. It implements
// the fire-and-forget contract: Notify never blocks its caller on network
// I/O and never propagates delivery failures.
type Dispatcher struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	botToken         string
	client           *http.Client
	logger           *slog.Logger
}

// NewDispatcher creates a Dispatcher. An empty botToken disables Telegram
// delivery; stored notifications still work.
func NewDispatcher(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, botToken string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		botToken:         botToken,
		client:           &http.Client{Timeout: 10 * time.Second},
		logger:           logger,
	}
}

// Notify records the notification and kicks off Telegram delivery.
func (d *Dispatcher) Notify(userID uint64, message string) {
	if err := d.notificationRepo.Store(&models.Notification{
		UserID:  userID,
		Message: message,
	}); err != nil {
		d.logger.Error("failed to store notification", "user_id", userID, "error", err)
	}

	if d.botToken == "" {
		return
	}
	go d.sendTelegram(userID, message)
}

func (d *Dispatcher) sendTelegram(userID uint64, message string) {
	user, err := d.userRepo.FindByID(userID)
	if err != nil {
		d.logger.Warn("telegram delivery skipped", "user_id", userID, "error", err)
		return
	}
	chatID := strings.TrimSpace(user.TelegramChatID)
	if chatID == "" {
		return
	}

	endpoint := telegramAPIBase + "/bot" + d.botToken + "/sendMessage"
	resp, err := d.client.PostForm(endpoint, url.Values{
		"chat_id": {chatID},
		"text":    {message},
	})
	if err != nil {
		d.logger.Warn("telegram delivery failed", "user_id", userID, "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("telegram delivery rejected", "user_id", userID, "status", resp.StatusCode)
	}
}
