package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

type AlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
}

// ErrorAlertMiddleware posts deduplicated panic/error alerts to a JSON
// webhook so provisioning failures surface somewhere other than logs.
type ErrorAlertMiddleware struct {
	config        AlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration // prevent spam
	httpClient    *http.Client
}

func NewErrorAlertMiddleware(config AlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// HTTPMiddleware wraps HTTP handlers with panic capture and alerting.
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(w, fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// WrapTask wraps a background task (e.g. the seeder) with panic capture
// and error alerting.
func (m *ErrorAlertMiddleware) WrapTask(taskName string, task func() error) func() error {
	return func() error {
		defer m.recoverAndAlert(nil, fmt.Sprintf("Background task: %s", taskName))

		if err := task(); err != nil {
			m.alertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

func (m *ErrorAlertMiddleware) recoverAndAlert(w http.ResponseWriter, context string) {
	if r := recover(); r != nil {
		log.Printf("❌ Panic in %s: %v", context, r)
		m.alertOnError(fmt.Errorf("panic: %v", r), context)
		if w != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

func (m *ErrorAlertMiddleware) alertOnError(err error, context string) {
	if m.config.WebhookURL == "" {
		return
	}

	errorMsg := fmt.Sprintf("%s: %v", context, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	if lastAlert, exists := m.alertedErrors[hash]; exists && time.Since(lastAlert) < m.alertCooldown {
		m.mutex.Unlock()
		return
	}
	m.alertedErrors[hash] = time.Now()
	m.mutex.Unlock()

	// Send alert asynchronously so the request path never blocks on the webhook
	go m.sendAlert(errorMsg)
}

func (m *ErrorAlertMiddleware) sendAlert(message string) {
	payload := map[string]string{
		"app":         m.config.AppName,
		"environment": m.config.Environment,
		"message":     message,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal alert payload: %v", err)
		return
	}

	resp, err := m.httpClient.Post(m.config.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to send alert: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		log.Printf("❌ Alert webhook responded with status %d", resp.StatusCode)
	}
}
