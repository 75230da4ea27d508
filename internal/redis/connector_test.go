package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/notary/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), testOptions(mr.Addr()), logger.Nop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestConnectTimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := Connect(context.Background(), testOptions(addr), logger.Nop())
	if err == nil {
		t.Fatal("Connect() should fail when redis is down")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect() took %v, should give up after ConnectTimeout", elapsed)
	}
}

func TestConnectInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
	}{
		{"zero connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{"zero retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{"zero max wait", func(o *ConnectOptions) { o.MaxWait = 0 }},
		{"zero ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }},
		{"negative warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("127.0.0.1:0")
			tt.mutate(&opts)
			if _, err := Connect(context.Background(), opts, logger.Nop()); err == nil {
				t.Error("Connect() should reject invalid options")
			}
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	err := ConnectOptions{WarnThreshold: -1}.Validate()
	if err == nil {
		t.Fatal("Validate() should fail on zero options")
	}
	for _, name := range []string{"ConnectTimeout", "RetryInterval", "MaxWait", "PingTimeout", "WarnThreshold"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Validate() error %q does not mention %s", err, name)
		}
	}
}

func TestBackoff(t *testing.T) {
	bo := backoff{wait: 10 * time.Millisecond, max: 35 * time.Millisecond}
	want := []time.Duration{10, 20, 35, 35}
	for i, w := range want {
		if got := bo.next(); got != w*time.Millisecond {
			t.Errorf("step %d: next() = %v, want %v", i, got, w*time.Millisecond)
		}
	}
}
