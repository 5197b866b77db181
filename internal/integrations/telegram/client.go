package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// Client клиент для отправки уведомлений оператору через Telegram Bot API.
// Уведомления — fire-and-forget: ошибки логируются вызывающей стороной
// и никогда не блокируют основной путь бронирования.
type Client struct {
	apiBase    string
	chatID     string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр Telegram-клиента
func NewClient(botToken, chatID string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		apiBase: "https://api.telegram.org/bot" + botToken,
		chatID:  chatID,
		enabled: enabled && botToken != "" && chatID != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// sendMessageRequest тело запроса Bot API sendMessage
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// sendMessageResponse ответ Bot API
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage отправляет сообщение в настроенный чат (MarkdownV2)
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.enabled {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	var apiResp sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInternal, err)
	}

	if !apiResp.OK {
		return fmt.Errorf("%w: %s", ErrAPIError, apiResp.Description)
	}

	return nil
}

// NotifyNewReservation уведомление о новом бронировании
func (c *Client) NotifyNewReservation(ctx context.Context, res *domain.Reservation) error {
	lines := []string{
		"🏠 *Новое бронирование\\!*",
		"",
		"👤 Имя: " + escapeMarkdown(res.GuestName),
		"📞 Телефон: " + escapeMarkdown(res.Phone),
		fmt.Sprintf("👥 Гостей: %d", res.GuestCount),
		"📅 Заезд: " + escapeMarkdown(formatDate(res.CheckIn.String())),
		"📅 Выезд: " + escapeMarkdown(formatDate(res.CheckOut.String())),
		"",
		"💰 *Сумма: " + escapeMarkdown(formatPrice(res.TotalPrice)) + " ₽*",
	}
	if res.Comment != nil && *res.Comment != "" {
		lines = append(lines, "", "💬 Комментарий: "+escapeMarkdown(*res.Comment))
	}
	lines = append(lines, "", "⏳ *Статус: Ожидает оплаты*")

	return c.SendMessage(ctx, strings.Join(lines, "\n"))
}

// NotifyAutoCancelled уведомление об автоотмене неоплаченного бронирования
func (c *Client) NotifyAutoCancelled(ctx context.Context, res *domain.Reservation) error {
	lines := []string{
		"❌ *Бронирование автоматически отменено*",
		"",
		"👤 " + escapeMarkdown(res.GuestName),
		"📞 " + escapeMarkdown(res.Phone),
		"📅 " + escapeMarkdown(formatDate(res.CheckIn.String())) + " — " + escapeMarkdown(formatDate(res.CheckOut.String())),
		"",
		"Причина: предоплата не поступила в установленный срок\\.",
		"Даты снова доступны для бронирования\\.",
	}

	return c.SendMessage(ctx, strings.Join(lines, "\n"))
}

// NotifyPendingReminder напоминание о неоплаченном бронировании.
// remainingHours — сколько часов осталось до автоотмены.
func (c *Client) NotifyPendingReminder(ctx context.Context, res *domain.Reservation, remainingHours int) error {
	lines := []string{
		"🔔 *Напоминание: предоплата не поступила*",
		"",
		"👤 " + escapeMarkdown(res.GuestName),
		"📞 " + escapeMarkdown(res.Phone),
		"📅 " + escapeMarkdown(formatDate(res.CheckIn.String())) + " — " + escapeMarkdown(formatDate(res.CheckOut.String())),
		"",
	}
	if remainingHours > 0 {
		lines = append(lines, fmt.Sprintf("⏰ Бронь будет *автоматически отменена* через *%d ч*, если оплата не поступит\\.", remainingHours))
	} else {
		lines = append(lines, "⏰ Бронь будет *отменена в ближайшее время*, если оплата не поступит\\.")
	}
	lines = append(lines, "", "Подтвердите оплату в админ\\-панели или отмените бронирование\\.")

	return c.SendMessage(ctx, strings.Join(lines, "\n"))
}

// markdownSpecials спецсимволы MarkdownV2, требующие экранирования
const markdownSpecials = "_*[]()~`>#+-=|{}.!\\"

// escapeMarkdown экранирует пользовательские данные, чтобы они
// не ломали разметку сообщения
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatDate форматирует "YYYY-MM-DD" как "DD.MM.YYYY"
func formatDate(dateStr string) string {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return dateStr
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

// formatPrice форматирует цену с разделителем тысяч: 15 000
func formatPrice(price float64) string {
	s := fmt.Sprintf("%.0f", price)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
