// Package qbit hands search results to a qBittorrent instance through its
// Web API.
package qbit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/litescript/kat-search/internal/kat"
	log "github.com/sirupsen/logrus"
)

// ErrNoDownloadLink is returned for results that carry neither a magnet nor a torrent link.
var ErrNoDownloadLink = errors.New("torrent has no magnet or download link")

// Client interfaces with qBittorrent Web API
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	mu       sync.Mutex // guards loggedIn
	loggedIn bool
}

// NewClient creates a new qBittorrent API client
func NewClient(host string, port int, username, password string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL:  fmt.Sprintf("http://%s:%d", host, port),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Login authenticates with the qBittorrent API
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login(ctx)
}

// ensureLogin logs in once; concurrent callers wait for the first attempt.
func (c *Client) ensureLogin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn {
		return nil
	}
	return c.login(ctx)
}

// login must be called with mu held.
func (c *Client) login(ctx context.Context) error {
	data := url.Values{}
	data.Set("username", c.username)
	data.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/auth/login", strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to qBittorrent: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "Ok." {
		return fmt.Errorf("login failed: %s", strings.TrimSpace(string(body)))
	}

	c.loggedIn = true
	return nil
}

// Version returns the qBittorrent version
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/app/version", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("qBittorrent returned HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// DownloadLink picks what qBittorrent should fetch for a result: the magnet
// when present, otherwise the .torrent URL.
func DownloadLink(t kat.Torrent) (string, error) {
	switch {
	case t.Magnet != "":
		return t.Magnet, nil
	case t.TorrentLink != "":
		return t.TorrentLink, nil
	default:
		return "", ErrNoDownloadLink
	}
}

// AddTorrent queues a search result for download
func (c *Client) AddTorrent(ctx context.Context, t kat.Torrent, savePath string) error {
	link, err := DownloadLink(t)
	if err != nil {
		return err
	}

	if err := c.ensureLogin(ctx); err != nil {
		return err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	_ = writer.WriteField("urls", link)
	if savePath != "" {
		_ = writer.WriteField("savepath", savePath)
	}
	if t.Category != "" {
		_ = writer.WriteField("tags", t.Category)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/torrents/add", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to add torrent: %s", strings.TrimSpace(string(respBody)))
	}

	log.WithFields(log.Fields{"title": t.Title, "savepath": savePath}).Infof("Queued torrent in qBittorrent")
	return nil
}
