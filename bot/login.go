package bot

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// loginClient is a shared HTTP client with pooling and timeouts for the login
// endpoint.
var loginClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: 60 * time.Second,
}

// login runs the assertion handshake triggered by a challstr message. It only
// sends through the outbound queue, so running it off the decode goroutine is
// safe. A failed login surfaces later through the updateuser fatal path.
func (b *Bot) login(key, challenge string) {
	go func() {
		cfg := b.GetConfig()
		assertion, err := fetchAssertion(cfg.LoginServer, cfg.Username, cfg.Password, key+"|"+challenge)
		if err != nil {
			log.Error().Err(err).Str("module", "bot").Msg("login request failed")
			return
		}
		b.Send("|/trn " + cfg.Username + ",0," + assertion)
	}()
}

func fetchAssertion(loginServer, username, password, challstr string) (string, error) {
	if password == "" {
		// Unregistered account: a plain assertion fetch is enough.
		q := url.Values{
			"act":      {"getassertion"},
			"userid":   {strings.ToLower(username)},
			"challstr": {challstr},
		}
		resp, err := loginClient.Get(loginServer + "?" + q.Encode())
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		assertion := string(body)
		if assertion == "" || strings.HasPrefix(assertion, ";") {
			return "", fmt.Errorf("assertion rejected: %q", assertion)
		}
		return assertion, nil
	}

	form := url.Values{
		"act":      {"login"},
		"name":     {username},
		"pass":     {password},
		"challstr": {challstr},
	}
	resp, err := loginClient.PostForm(loginServer, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	// The endpoint prefixes its JSON payload with a single ']' byte.
	if len(body) < 2 || body[0] != ']' {
		return "", fmt.Errorf("malformed login response: %q", string(body))
	}
	var parsed struct {
		ActionSuccess bool   `json:"actionsuccess"`
		Assertion     string `json:"assertion"`
	}
	if err := json.Unmarshal(body[1:], &parsed); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if !parsed.ActionSuccess || parsed.Assertion == "" || strings.HasPrefix(parsed.Assertion, ";") {
		return "", fmt.Errorf("login rejected for %s", username)
	}
	return parsed.Assertion, nil
}
