package quota

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCounter struct {
	values map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{values: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.values[key]++
	f.ttls[key] = ttl
	return f.values[key], nil
}

func TestLimiterDisabledWithoutRedis(t *testing.T) {
	l := NewLimiter(nil, "caption", 3)
	if l.Enabled() {
		t.Fatal("Enabled() = true without a Redis client")
	}

	for i := 0; i < 10; i++ {
		usage, err := l.Take(context.Background(), "client-a")
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
		if usage.Exceeded() {
			t.Fatalf("usage exceeded on call %d with limiter disabled", i+1)
		}
	}
}

func TestNilLimiterIsDisabled(t *testing.T) {
	var l *Limiter
	if l.Enabled() {
		t.Fatal("nil limiter reported enabled")
	}
}

func TestUsageExceeded(t *testing.T) {
	tests := []struct {
		name  string
		usage Usage
		want  bool
	}{
		{"under", Usage{Used: 1, Limit: 3}, false},
		{"at limit", Usage{Used: 3, Limit: 3}, false},
		{"over", Usage{Used: 4, Limit: 3}, true},
		{"no limit", Usage{Used: 100, Limit: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usage.Exceeded(); got != tt.want {
				t.Fatalf("Exceeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLimiterKeyIsDaily(t *testing.T) {
	l := NewLimiter(nil, "caption", 3)
	l.now = func() time.Time { return time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC) }

	if got := l.key("1.2.3.4"); got != "caption:20261019:1.2.3.4" {
		t.Fatalf("key = %q", got)
	}
}

func TestLimiterTake(t *testing.T) {
	counter := newFakeCounter()
	l := NewLimiterWithCounter(counter, "caption", 2)
	l.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		usage, err := l.Take(ctx, "client-a")
		if err != nil || usage.Exceeded() || usage.Used != i || usage.Limit != 2 {
			t.Fatalf("call %d: usage = %+v err = %v", i, usage, err)
		}
	}

	usage, err := l.Take(ctx, "client-a")
	if err != nil || !usage.Exceeded() {
		t.Fatalf("third call: usage = %+v err = %v", usage, err)
	}

	// 다른 클라이언트는 별도 카운터
	if usage, _ := l.Take(ctx, "client-b"); usage.Used != 1 {
		t.Fatalf("client-b used = %d", usage.Used)
	}
	if ttl := counter.ttls["caption:20261019:client-a"]; ttl != 24*time.Hour {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestLimiterCounterErrorDoesNotLimit(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("connection refused")
	l := NewLimiterWithCounter(counter, "caption", 1)

	usage, err := l.Take(context.Background(), "client-a")
	if err == nil {
		t.Fatal("Take() error = nil, want the counter error")
	}
	if usage.Exceeded() {
		t.Fatalf("usage = %+v, want not exceeded", usage)
	}
}

// respServer answers INCR, EXPIRE and MULTI/EXEC over RESP2.
// Everything else gets an error reply, which go-redis tolerates during the
// connection handshake.
type respServer struct {
	ln     net.Listener
	mu     sync.Mutex
	values map[string]int64
	ttls   map[string]int64
}

func newRESPServer(t *testing.T) *respServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := &respServer{ln: ln, values: map[string]int64{}, ttls: map[string]int64{}}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *respServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *respServer) handle(conn net.Conn) {
	defer conn.Close()
	rd := bufio.NewReader(conn)

	var queued [][]string
	inMulti := false
	for {
		args, err := readCommand(rd)
		if err != nil {
			return
		}

		var reply string
		switch name := strings.ToUpper(args[0]); {
		case name == "MULTI":
			inMulti, queued = true, nil
			reply = "+OK\r\n"
		case name == "EXEC":
			reply = fmt.Sprintf("*%d\r\n", len(queued))
			for _, q := range queued {
				reply += s.exec(q)
			}
			inMulti, queued = false, nil
		case inMulti:
			queued = append(queued, args)
			reply = "+QUEUED\r\n"
		default:
			reply = s.exec(args)
		}
		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

func (s *respServer) exec(args []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "INCR":
		s.values[args[1]]++
		return fmt.Sprintf(":%d\r\n", s.values[args[1]])
	case "EXPIRE":
		seconds, _ := strconv.ParseInt(args[2], 10, 64)
		s.ttls[args[1]] = seconds
		return ":1\r\n"
	default:
		return "-ERR unknown command '" + args[0] + "'\r\n"
	}
}

func (s *respServer) ttl(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttls[key]
}

func readCommand(rd *bufio.Reader) ([]string, error) {
	line, err := rd.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected line %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		header, err := rd.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(header[1:]))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(rd, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func TestRedisCounterIncrAndExpire(t *testing.T) {
	srv := newRESPServer(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.ln.Addr().String()})
	defer rdb.Close()

	l := NewLimiter(rdb, "caption", 2)
	l.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	if !l.Enabled() {
		t.Fatal("Enabled() = false with a Redis client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var usage Usage
	for i := 0; i < 3; i++ {
		var err error
		usage, err = l.Take(ctx, "203.0.113.9")
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
	}
	if usage.Used != 3 || !usage.Exceeded() {
		t.Fatalf("usage = %+v", usage)
	}
	if ttl := srv.ttl("caption:20261019:203.0.113.9"); ttl != 86400 {
		t.Fatalf("ttl = %d, want 86400", ttl)
	}
}

func TestRedisCounterUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	rdb := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1, DialTimeout: time.Second})
	defer rdb.Close()

	usage, err := NewLimiter(rdb, "caption", 1).Take(context.Background(), "client-a")
	if err == nil {
		t.Fatal("Take() error = nil against a closed port")
	}
	if usage.Exceeded() {
		t.Fatalf("usage = %+v, want not exceeded", usage)
	}
}
