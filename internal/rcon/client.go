package rcon

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
)

var ErrClosed = errors.New("rcon client closed")

// Client sends RCON datagrams to one server address.
type Client struct {
	address string
	conn    *net.UDPConn
	mu      sync.Mutex
}

// Dial resolves host:port and opens a UDP socket to it. No packet is sent,
// so Dial succeeds whether or not a server is listening.
func Dial(host string, port int) (*Client, error) {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	raddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to translate the target address %s: %w", address, err)
	}

	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("failed to open socket to %s: %w", address, err)
	}

	return &Client{address: address, conn: conn}, nil
}

// Address returns the host:port the client sends to.
func (c *Client) Address() string {
	return c.address
}

// Send sends one command.
func (c *Client) Send(password, command string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrClosed
	}
	if _, err := c.conn.Write(Frame(password, command)); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// Close closes the socket.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
