package printers

import (
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

// startPrinter listens like a raw thermal printer and reports the bytes
// of the first accepted connection.
func startPrinter(t *testing.T) (Target, <-chan []byte) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	received := make(chan []byte, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	return targetFor(t, l.Addr().String(), "ok-printer"), received
}

// closedPort returns an address that refuses connections.
func closedPort(t *testing.T) Target {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return targetFor(t, addr, "dead-printer")
}

func targetFor(t *testing.T, addr, name string) Target {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split %s: %v", addr, err)
	}
	port, _ := strconv.Atoi(portStr)
	return Target{Name: name, Host: host, Port: port, Enabled: true}
}

func TestSend_DeliversFullPayload(t *testing.T) {
	target, received := startPrinter(t)
	d := NewDispatcher(time.Second)

	payload := []byte{0x1B, 0x40, 'c', 'i', 'a', 'o', 0x0A, 0x1D, 0x56, 0x00}
	res := d.Send(Job{Target: target, Label: "Pizzeria", Payload: payload})

	if !res.OK {
		t.Fatalf("expected success, got %q", res.Message)
	}
	select {
	case got := <-received:
		if string(got) != string(payload) {
			t.Fatalf("payload mismatch:\n got % X\nwant % X", got, payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("printer never received the payload")
	}
}

func TestSend_MissingAddressFailsWithoutDialing(t *testing.T) {
	d := NewDispatcher(time.Second)

	res := d.Send(Job{Target: Target{Name: "ghost"}, Label: "Bar", Payload: []byte("x")})

	if res.OK {
		t.Fatal("expected failure for unconfigured target")
	}
	if !strings.Contains(res.Message, "not configured") {
		t.Fatalf("expected configuration diagnostic, got %q", res.Message)
	}
}

func TestSendAll_FailureDoesNotBlockRemainingJobs(t *testing.T) {
	dead := closedPort(t)
	alive, received := startPrinter(t)
	d := NewDispatcher(time.Second)

	results := d.SendAll([]Job{
		{Target: dead, Label: "Cucina", Payload: []byte("one")},
		{Target: alive, Label: "Pizzeria", Payload: []byte("two")},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].OK {
		t.Fatalf("expected first job to fail: %+v", results[0])
	}
	if !results[1].OK {
		t.Fatalf("expected second job to succeed: %+v", results[1])
	}
	select {
	case got := <-received:
		if string(got) != "two" {
			t.Fatalf("reachable printer got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reachable printer never received its payload")
	}
}
