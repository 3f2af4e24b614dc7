// Package captcha verifies human-verification tokens with an external provider.
package captcha

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/middleware"
)

const (
	turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	hcaptchaVerifyURL  = "https://hcaptcha.com/siteverify"

	// Bounds the outbound verification call so a slow provider degrades a
	// single request rather than stalling the pipeline.
	verifyTimeout = 6 * time.Second
)

// Verifier checks whether a captcha token represents a solved challenge.
// Implementations hold no persistent state.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// New selects a Verifier from configuration, once at startup.
//
// A bypass flag short-circuits every check (non-production only). A missing
// secret or unknown provider is an operator fault: the returned verifier
// fails closed so the client sees a generic captcha failure without learning
// anything about server configuration.
func New(cfg *config.Config) Verifier {
	if cfg.CaptchaBypass {
		return bypassVerifier{}
	}

	provider := strings.ToLower(cfg.CaptchaProvider)
	switch provider {
	case "", "turnstile":
		if cfg.TurnstileSecret == "" {
			return misconfiguredVerifier{provider: "turnstile"}
		}
		return &providerVerifier{
			name:      "turnstile",
			verifyURL: turnstileVerifyURL,
			secret:    cfg.TurnstileSecret,
			client:    &http.Client{Timeout: verifyTimeout},
		}
	case "hcaptcha":
		if cfg.HCaptchaSecret == "" {
			return misconfiguredVerifier{provider: "hcaptcha"}
		}
		return &providerVerifier{
			name:      "hcaptcha",
			verifyURL: hcaptchaVerifyURL,
			secret:    cfg.HCaptchaSecret,
			client:    &http.Client{Timeout: verifyTimeout},
		}
	default:
		return misconfiguredVerifier{provider: provider}
	}
}

// bypassVerifier accepts every token, including absent ones.
type bypassVerifier struct{}

func (bypassVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	middleware.Logger.DebugContext(ctx, "captcha bypass active, skipping verification")
	return true
}

// misconfiguredVerifier fails closed and logs the operator-side fault.
type misconfiguredVerifier struct {
	provider string
}

func (v misconfiguredVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	middleware.Logger.ErrorContext(ctx, "captcha provider misconfigured",
		slog.String("provider", v.provider))
	return false
}

// providerVerifier posts the token to the provider's siteverify endpoint.
type providerVerifier struct {
	name      string
	verifyURL string
	secret    string
	client    *http.Client
}

type siteverifyResponse struct {
	Success bool `json:"success"`
}

// Verify fails closed: a missing token, non-2xx response, malformed body,
// network error or timeout all count as verification failure.
func (v *providerVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" {
		middleware.Logger.WarnContext(ctx, "captcha token missing",
			slog.String("provider", v.name))
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "captcha request build failed",
			slog.String("provider", v.name), slog.String("error", err.Error()))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "captcha verification error",
			slog.String("provider", v.name), slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.Logger.WarnContext(ctx, "captcha provider returned non-2xx",
			slog.String("provider", v.name), slog.Int("status", resp.StatusCode))
		return false
	}

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		middleware.Logger.WarnContext(ctx, "captcha response malformed",
			slog.String("provider", v.name), slog.String("error", err.Error()))
		return false
	}

	if !body.Success {
		middleware.Logger.WarnContext(ctx, "captcha verification failed",
			slog.String("provider", v.name))
	}
	return body.Success
}
