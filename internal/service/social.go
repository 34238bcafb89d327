package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const facebookGraphURL = "https://graph.facebook.com/me"

type facebookVerifier struct {
	client   *http.Client
	graphURL string
}

// NewFacebookVerifier returns a SocialVerifier that asks the Facebook Graph
// API who the access token belongs to and checks it against the claimed id.
func NewFacebookVerifier() SocialVerifier {
	return &facebookVerifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		graphURL: facebookGraphURL,
	}
}

func (v *facebookVerifier) Verify(ctx context.Context, userID string, accessToken string) error {
	reqURL := fmt.Sprintf("%s?fields=id&access_token=%s", v.graphURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facebook graph api returned status %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	if body.ID != userID {
		return fmt.Errorf("access token does not belong to user %s", userID)
	}

	return nil
}
