package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

const smsLimitPerMinute = 6

// TokenCache holds the gateway auth token with its expiry. It is owned
// by the SMS client, not module state, so tests can inject their own.
type TokenCache struct {
	mu      sync.Mutex
	token   string
	expires time.Time
}

func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || time.Now().After(c.expires) {
		return "", false
	}
	return c.token, true
}

func (c *TokenCache) Set(token string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expires = time.Now().Add(ttl)
}

// SMSClient talks to the SMS gateway. Sends are rate limited per phone
// through the smsLog collection and every attempt is logged there.
type SMSClient struct {
	BaseURL  string
	Email    string
	Password string
	From     string
	HTTP     *http.Client
	Tokens   *TokenCache
}

func NewSMSClient() *SMSClient {
	return &SMSClient{
		BaseURL:  os.Getenv("SMS_BASE_URL"),
		Email:    os.Getenv("SMS_EMAIL"),
		Password: os.Getenv("SMS_PASSWORD"),
		From:     os.Getenv("SMS_FROM"),
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Tokens:   &TokenCache{},
	}
}

// login fetches a fresh gateway token and caches it.
func (s *SMSClient) login() (string, error) {
	payload, _ := json.Marshal(map[string]string{
		"email":    s.Email,
		"password": s.Password,
	})
	resp, err := s.HTTP.Post(s.BaseURL+"/auth/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("sms login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sms login: status %d", resp.StatusCode)
	}
	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Data.Token == "" {
		return "", fmt.Errorf("sms login: bad response")
	}
	s.Tokens.Set(result.Data.Token, 24*time.Hour)
	return result.Data.Token, nil
}

func (s *SMSClient) authToken() (string, error) {
	if token, ok := s.Tokens.Get(); ok {
		return token, nil
	}
	return s.login()
}

// SendSMS delivers one message. Callers fire it from a goroutine and
// only log the returned error.
func (s *SMSClient) SendSMS(phone, message string) error {
	if s.BaseURL == "" {
		return fmt.Errorf("sms gateway is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var smsLog models.SMSLog
	err := config.SMSLogCollection.FindOne(ctx, bson.M{"phone": phone}).Decode(&smsLog)

	shouldReset := false
	if err == nil {
		elapsed := time.Since(smsLog.LastSent).Minutes()
		if elapsed >= 1 {
			shouldReset = true
		}
		if !shouldReset && smsLog.SMSLastMinute >= smsLimitPerMinute {
			return fmt.Errorf("sms rate limit for %s, try again later", phone)
		}
	}

	token, err := s.authToken()
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"mobile_phone": phone,
		"message":      message,
		"from":         s.From,
	})
	req, err := http.NewRequest(http.MethodPost, s.BaseURL+"/message/sms/send", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		update := bson.M{"$inc": bson.M{"failed_attempts": 1}}
		config.SMSLogCollection.UpdateOne(ctx, bson.M{"phone": phone}, update, options.Update().SetUpsert(true))
		return fmt.Errorf("failed to send SMS: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("SMS gateway response status: %d, body: %s", resp.StatusCode, string(respBody))

	if resp.StatusCode != http.StatusOK {
		update := bson.M{"$inc": bson.M{"failed_attempts": 1}}
		config.SMSLogCollection.UpdateOne(ctx, bson.M{"phone": phone}, update, options.Update().SetUpsert(true))
		return fmt.Errorf("received non-200 response from SMS gateway: %d", resp.StatusCode)
	}

	update := bson.M{
		"$set": bson.M{"last_sent": time.Now()},
		"$inc": bson.M{"total_sent": 1},
	}
	if shouldReset {
		update["$set"].(bson.M)["sms_last_minute"] = 1
	} else {
		update["$inc"].(bson.M)["sms_last_minute"] = 1
	}
	config.SMSLogCollection.UpdateOne(ctx, bson.M{"phone": phone}, update, options.Update().SetUpsert(true))

	return nil
}
