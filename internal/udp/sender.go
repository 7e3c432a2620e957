package udp

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"
)

// Sender ships datagrams to a fixed destination over UDP. Send never
// blocks: datagrams queue on a buffered channel drained by a single writer
// goroutine, and a full queue drops the datagram. Delivery is best effort;
// write errors are logged and never retried.
type Sender struct {
	conn  net.Conn
	queue chan []byte

	mu     sync.Mutex
	closed bool
}

func Dial(host string, port int) (*Sender, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dialing tuio destination: %w", err)
	}

	s := &Sender{
		conn:  conn,
		queue: make(chan []byte, 256),
	}
	go s.writePump()
	return s, nil
}

func (s *Sender) writePump() {
	defer s.conn.Close()
	for msg := range s.queue {
		if _, err := s.conn.Write(msg); err != nil {
			log.Printf("udp: send failed: %v", err)
		}
	}
}

// Send queues one datagram. It is safe to call after Close; late datagrams
// are dropped.
func (s *Sender) Send(datagram []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- datagram:
	default:
		log.Printf("udp: queue full, dropping datagram")
	}
}

// Close stops the writer goroutine and closes the socket once the queue
// drains.
func (s *Sender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.queue)
}
