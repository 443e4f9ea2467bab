package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultEndpoint = "https://api.web3forms.com/submit"

// Web3Forms posts notification events to a Web3Forms submit endpoint.
type Web3Forms struct {
	endpoint  string
	accessKey string
	client    *http.Client
}

func NewWeb3Forms(endpoint, accessKey string, timeout time.Duration) *Web3Forms {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Web3Forms{
		endpoint:  endpoint,
		accessKey: accessKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type submission struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	Message   string `json:"message"`
}

func (w *Web3Forms) Notify(ctx context.Context, ev Event) Result {
	body, err := json.Marshal(w.buildSubmission(ev))
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	return result
}

func (w *Web3Forms) buildSubmission(ev Event) submission {
	now := time.Now().Format("Monday, January 2, 2006 at 3:04:05 PM MST")

	var subject, action, dateLabel string
	switch ev.Kind {
	case KindSignUp:
		subject = "New User Registration - JobTrack"
		action = "registered on"
		dateLabel = "Registration Date"
	default:
		subject = "User Login Alert - JobTrack"
		action = "logged into"
		dateLabel = "Login Time"
	}

	message := fmt.Sprintf(
		"Hello Admin,\n\nA user has %s JobTrack:\n\nName: %s\nEmail: %s\n%s: %s\n\nThis is an automated notification from your JobTrack application.",
		action, ev.Name, ev.Email, dateLabel, now,
	)

	return submission{
		AccessKey: w.accessKey,
		Subject:   subject,
		FromName:  "JobTrack System",
		Message:   message,
	}
}
