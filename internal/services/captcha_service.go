package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// siteverifyResponse reCAPTCHA 校验接口的响应结构
type siteverifyResponse struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

// CaptchaService 调用 reCAPTCHA v3 校验提交者是否为真人
type CaptchaService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func NewCaptchaService() *CaptchaService {
	verifyURL := os.Getenv("RECAPTCHA_VERIFY_URL")
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}

	return &CaptchaService{
		secretKey: os.Getenv("RECAPTCHA_SECRET_KEY"),
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify 校验前端带来的 captcha token。
// 任何一步失败（配置缺失、请求失败、响应异常、分数不足）都返回 false，绝不放行。
func (s *CaptchaService) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if s.secretKey == "" {
		log.Println("RECAPTCHA_SECRET_KEY not configured, rejecting submission")
		return false
	}

	form := url.Values{}
	form.Set("secret", s.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("Captcha verify request build failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Captcha verify request failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Captcha verify read failed: %v", err)
		return false
	}

	var result siteverifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Captcha verify decode failed: %v", err)
		return false
	}

	// v3 返回 0.0 - 1.0 的分数，0.5 以上视为真人
	return result.Success && result.Score >= 0.5
}
