package devicecontrol

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/m04kA/ADS-BookingService/internal/config"
	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// StopCommand команда остановки воспроизведения для устройства
// CommandID позволяет устройству отбрасывать дубликаты: доставка QoS 1
// гарантирует как минимум одну доставку, но не ровно одну
type StopCommand struct {
	CommandID string `json:"commandId"`
	BatchID   string `json:"batchId,omitempty"`
	BookingID int64  `json:"bookingId"`
	MediaID   int64  `json:"mediaId"`
	IssuedAt  string `json:"issuedAt"` // ISO 8601
}

// Publisher публикует команды остановки воспроизведения в MQTT
// Каждый киоск подписан на свой командный топик signage/command/<kioskID>/stop
type Publisher struct {
	client         pahomqtt.Client
	qos            byte
	publishTimeout time.Duration
}

// NewPublisher подключается к брокеру и создает издателя команд
func NewPublisher(cfg config.MQTTConfig) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	connectTimeout := time.Duration(cfg.ConnectTimeout) * time.Second

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &Publisher{
		client:         client,
		qos:            byte(cfg.QoS),
		publishTimeout: time.Duration(cfg.PublishTimeout) * time.Second,
	}, nil
}

// PublishStop публикует команду остановки для одного отозванного бронирования
func (p *Publisher) PublishStop(notification *domain.RecallNotification) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	cmd := StopCommand{
		CommandID: notification.CommandID,
		BatchID:   notification.BatchID,
		BookingID: notification.BookingID,
		MediaID:   notification.MediaID,
		IssuedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal command: %v", ErrPublishFailed, err)
	}

	topic := stopTopic(notification.KioskID)
	token := p.client.Publish(topic, p.qos, false, payload)
	if !token.WaitTimeout(p.publishTimeout) {
		return fmt.Errorf("%w: timeout after %v on topic %s", ErrPublishFailed, p.publishTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	return nil
}

// Close отключается от брокера, дождавшись отправки буферизованных сообщений
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// stopTopic возвращает командный топик киоска
func stopTopic(kioskID int64) string {
	return fmt.Sprintf("signage/command/%d/stop", kioskID)
}
