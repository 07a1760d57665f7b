// Package httpclient implements an HTTP/1.1 client directly over TCP:
// request serialization, status-line and header parsing, and body framing
// via Content-Length, chunked encoding, or connection close.
package httpclient

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http/httputil"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultUserAgent = "protocols-JOR/1.0"

// Response is a parsed HTTP response.
type Response struct {
	Proto         string
	StatusCode    int
	Status        string // reason phrase
	Header        textproto.MIMEHeader
	Body          []byte
	ContentLength int64
}

// Client issues one HTTP exchange per connection (Connection: close).
type Client struct {
	UserAgent string
	Timeout   time.Duration
	logger    *slog.Logger
}

// New creates a client with an overall per-request timeout.
func New(timeout time.Duration, parentLogger *slog.Logger) *Client {
	return &Client{
		UserAgent: defaultUserAgent,
		Timeout:   timeout,
		logger:    parentLogger.With(slog.String("component", "http")),
	}
}

// Get is shorthand for Do("GET", ...).
func (c *Client) Get(rawURL string, headers map[string]string) (*Response, error) {
	return c.Do("GET", rawURL, headers, nil)
}

// Post sends body with the given content type.
func (c *Client) Post(rawURL, contentType string, body []byte) (*Response, error) {
	headers := map[string]string{"Content-Type": contentType}
	return c.Do("POST", rawURL, headers, body)
}

// Do performs one request/response exchange over a fresh TCP connection.
func (c *Client) Do(method, rawURL string, headers map[string]string, body []byte) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", rawURL)
	}
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "80")
	}

	dialer := net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	if c.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(c.Timeout))
	}

	c.logger.Debug("Sending request.", "method", method, "host", u.Host, "path", u.RequestURI())
	if err := writeRequest(conn, method, u, c.userAgent(), headers, body); err != nil {
		return nil, err
	}
	return readResponse(conn)
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

// writeRequest serializes the request line, headers, and body.
func writeRequest(w io.Writer, method string, u *url.URL, userAgent string, headers map[string]string, body []byte) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s HTTP/1.1\r\n", method, u.RequestURI())
	fmt.Fprintf(&sb, "Host: %s\r\n", u.Host)
	fmt.Fprintf(&sb, "User-Agent: %s\r\n", userAgent)
	sb.WriteString("Connection: close\r\n")
	for k, v := range headers {
		fmt.Fprintf(&sb, "%s: %s\r\n", k, v)
	}
	if len(body) > 0 {
		fmt.Fprintf(&sb, "Content-Length: %d\r\n", len(body))
	}
	sb.WriteString("\r\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("write request body: %w", err)
		}
	}
	return nil
}

// readResponse parses the status line, the headers, and the body according
// to the framing the server chose.
func readResponse(r io.Reader) (*Response, error) {
	br := bufio.NewReader(r)
	tp := textproto.NewReader(br)

	statusLine, err := tp.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("read status line: %w", err)
	}
	proto, rest, ok := strings.Cut(statusLine, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return nil, fmt.Errorf("malformed status line %q", statusLine)
	}
	codeStr, reason, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, fmt.Errorf("malformed status code in %q", statusLine)
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read headers: %w", err)
	}

	resp := &Response{
		Proto:         proto,
		StatusCode:    code,
		Status:        reason,
		Header:        header,
		ContentLength: -1,
	}

	switch {
	case strings.EqualFold(header.Get("Transfer-Encoding"), "chunked"):
		resp.Body, err = io.ReadAll(httputil.NewChunkedReader(br))
		if err != nil {
			return nil, fmt.Errorf("read chunked body: %w", err)
		}
	case header.Get("Content-Length") != "":
		n, err := strconv.ParseInt(header.Get("Content-Length"), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed Content-Length %q", header.Get("Content-Length"))
		}
		resp.ContentLength = n
		resp.Body = make([]byte, n)
		if _, err := io.ReadFull(br, resp.Body); err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	default:
		// No framing info: the body runs until the server closes.
		resp.Body, err = io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	}
	if resp.ContentLength < 0 {
		resp.ContentLength = int64(len(resp.Body))
	}
	return resp, nil
}
