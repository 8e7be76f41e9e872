package moderation

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/wallpaper_server/config"
)

// 审核建议
const (
	SuggestPass          = "pass"
	SuggestNonCompliance = "non_compliance"
	SuggestSuspected     = "suspected"
)

const (
	successCode = "000000"
	utcLayout   = "2006-01-02T15:04:05-0700"
)

var (
	ErrNotConfigured = errors.New("moderation credentials not configured")
	ErrRejected      = errors.New("moderation request rejected")
)

// Result 审核接口返回
type Result struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Sid  string `json:"sid,omitempty"`
	Data struct {
		Result struct {
			Suggest string          `json:"suggest"`
			Detail  json.RawMessage `json:"detail,omitempty"`
		} `json:"result"`
	} `json:"data"`

	// Raw 为原始响应体
	Raw json.RawMessage `json:"-"`
}

// Suggest 返回审核建议
func (r *Result) Suggest() string {
	return r.Data.Result.Suggest
}

// Client 讯飞图片合规接口
type Client struct {
	endpoint   string
	appID      string
	apiKey     string
	apiSecret  string
	httpClient *http.Client

	now   func() time.Time
	nonce func() string
}

func NewClient(cfg *config.ModerationConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		appID:      cfg.AppID,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		nonce: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// signedQuery 生成带签名的查询串：参数按键排序 urlencode 后做 HMAC-SHA1，base64 作为 signature
func (c *Client) signedQuery() url.Values {
	params := url.Values{}
	params.Set("appId", c.appID)
	params.Set("accessKeyId", c.apiKey)
	params.Set("accessKeySecret", c.apiSecret)
	params.Set("utc", c.now().UTC().Format(utcLayout))
	params.Set("uuid", c.nonce())

	mac := hmac.New(sha1.New, []byte(c.apiSecret))
	mac.Write([]byte(params.Encode()))
	params.Set("signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return params
}

// ModerateImage 提交图片 URL 审核
func (c *Client) ModerateImage(ctx context.Context, imageURL string) (*Result, error) {
	if c.appID == "" || c.apiKey == "" || c.apiSecret == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"content": imageURL})
	if err != nil {
		return nil, err
	}

	reqURL := c.endpoint + "?" + c.signedQuery().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d", ErrRejected, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode moderation response: %w", err)
	}
	result.Raw = raw

	if result.Code != successCode {
		return &result, fmt.Errorf("%w: %s %s", ErrRejected, result.Code, result.Desc)
	}

	return &result, nil
}
