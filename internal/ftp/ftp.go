// Package ftp implements a minimal FTP client: control-connection
// authentication, passive-mode data transfers, directory listing, and
// file download/upload.
package ftp

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Reply codes the client drives its state machine on.
const (
	codeReady          = 220
	codeLoggedIn       = 230
	codeNeedPassword   = 331
	codePassiveMode    = 227
	codeTransferStart  = 150
	codeTransferDone   = 226
	codeClosingControl = 221
)

// Client is an FTP control connection. A separate data connection is dialed
// per transfer in passive mode. Not safe for concurrent use.
type Client struct {
	conn    net.Conn
	text    *textproto.Conn
	timeout time.Duration
	logger  *slog.Logger
}

// Dial connects to an FTP server at addr (host:port) and consumes the 220
// greeting.
func Dial(addr string, timeout time.Duration, parentLogger *slog.Logger) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c := &Client{
		conn:    conn,
		text:    textproto.NewConn(conn),
		timeout: timeout,
		logger:  parentLogger.With(slog.String("component", "ftp")),
	}
	if _, _, err := c.text.ReadResponse(codeReady); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ftp greeting: %w", err)
	}
	c.logger.Debug("Connected to FTP server.", "addr", addr)
	return c, nil
}

// cmd sends one control command and reads the reply, requiring expectCode
// unless it is <= 0.
func (c *Client) cmd(expectCode int, format string, args ...any) (int, string, error) {
	if err := c.text.PrintfLine(format, args...); err != nil {
		return 0, "", fmt.Errorf("send command: %w", err)
	}
	return c.text.ReadResponse(expectCode)
}

// Login authenticates with USER/PASS. Servers that need no password answer
// 230 to USER directly.
func (c *Client) Login(user, pass string) error {
	code, msg, err := c.cmd(0, "USER %s", user)
	if err != nil {
		return fmt.Errorf("USER: %w", err)
	}
	switch code {
	case codeLoggedIn:
		return nil
	case codeNeedPassword:
		if _, _, err := c.cmd(codeLoggedIn, "PASS %s", pass); err != nil {
			return fmt.Errorf("PASS: %w", err)
		}
		c.logger.Debug("Logged in.", "user", user)
		return nil
	default:
		return fmt.Errorf("USER: unexpected reply %d %s", code, msg)
	}
}

// openDataConn requests passive mode and dials the data port the server
// advertises.
func (c *Client) openDataConn() (net.Conn, error) {
	_, msg, err := c.cmd(codePassiveMode, "PASV")
	if err != nil {
		return nil, fmt.Errorf("PASV: %w", err)
	}
	addr, err := parsePASV(msg)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("dial data connection %s: %w", addr, err)
	}
	return conn, nil
}

// parsePASV extracts host:port from a 227 reply of the form
// "Entering Passive Mode (h1,h2,h3,h4,p1,p2)".
func parsePASV(msg string) (string, error) {
	start := strings.IndexByte(msg, '(')
	end := strings.LastIndexByte(msg, ')')
	if start < 0 || end < start {
		return "", fmt.Errorf("malformed PASV reply: %q", msg)
	}
	parts := strings.Split(msg[start+1:end], ",")
	if len(parts) != 6 {
		return "", fmt.Errorf("malformed PASV host/port: %q", msg)
	}
	nums := make([]int, 6)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("malformed PASV octet %q in %q", p, msg)
		}
		nums[i] = n
	}
	host := fmt.Sprintf("%d.%d.%d.%d", nums[0], nums[1], nums[2], nums[3])
	port := nums[4]<<8 | nums[5]
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// List retrieves the directory listing over a passive data connection.
func (c *Client) List() (string, error) {
	data, err := c.openDataConn()
	if err != nil {
		return "", err
	}
	defer data.Close()

	if _, _, err := c.cmd(codeTransferStart, "LIST"); err != nil {
		return "", fmt.Errorf("LIST: %w", err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, data); err != nil {
		return "", fmt.Errorf("read listing: %w", err)
	}
	data.Close()
	if _, _, err := c.text.ReadResponse(codeTransferDone); err != nil {
		return "", fmt.Errorf("LIST completion: %w", err)
	}
	return sb.String(), nil
}

// Retr downloads the named file into w and returns the byte count.
func (c *Client) Retr(name string, w io.Writer) (int64, error) {
	data, err := c.openDataConn()
	if err != nil {
		return 0, err
	}
	defer data.Close()

	if _, _, err := c.cmd(codeTransferStart, "RETR %s", name); err != nil {
		return 0, fmt.Errorf("RETR %s: %w", name, err)
	}
	n, err := io.Copy(w, data)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", name, err)
	}
	data.Close()
	if _, _, err := c.text.ReadResponse(codeTransferDone); err != nil {
		return n, fmt.Errorf("RETR completion: %w", err)
	}
	c.logger.Debug("Download complete.", "file", name, "bytes", n)
	return n, nil
}

// Stor uploads r as the named file and returns the byte count.
func (c *Client) Stor(name string, r io.Reader) (int64, error) {
	data, err := c.openDataConn()
	if err != nil {
		return 0, err
	}
	defer data.Close()

	if _, _, err := c.cmd(codeTransferStart, "STOR %s", name); err != nil {
		return 0, fmt.Errorf("STOR %s: %w", name, err)
	}
	n, err := io.Copy(data, r)
	// The server only sees EOF once the data connection closes.
	data.Close()
	if err != nil {
		return n, fmt.Errorf("upload %s: %w", name, err)
	}
	if _, _, err := c.text.ReadResponse(codeTransferDone); err != nil {
		return n, fmt.Errorf("STOR completion: %w", err)
	}
	c.logger.Debug("Upload complete.", "file", name, "bytes", n)
	return n, nil
}

// Quit sends QUIT and closes the control connection.
func (c *Client) Quit() error {
	_, _, err := c.cmd(codeClosingControl, "QUIT")
	closeErr := c.conn.Close()
	if err != nil {
		return fmt.Errorf("QUIT: %w", err)
	}
	return closeErr
}
