package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"1.2.3.4":        "1.2.3.4",
		"1.2.3.4:8080":   "1.2.3.4",
		"[::1]:8080":     "::1",
		"[2001:db8::1]":  "2001:db8::1",
		"recs.local:443": "recs.local",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr only", want: "192.0.2.1"},
		{name: "proxy headers ignored when untrusted", headers: map[string]string{"X-Forwarded-For": "10.0.0.1"}, want: "192.0.2.1"},
		{name: "cloudflare header first", headers: map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, trustProxy: true, want: "1.1.1.1"},
		{name: "first forwarded for", headers: map[string]string{"X-Forwarded-For": "2.2.2.2, 3.3.3.3"}, trustProxy: true, want: "2.2.2.2"},
		{name: "real ip fallback", headers: map[string]string{"X-Real-IP": "4.4.4.4"}, trustProxy: true, want: "4.4.4.4"},
		{name: "no headers with trusted proxy", trustProxy: true, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.5 ", "2001:db8::/32", "not-an-ip", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "10.20.30.40", want: true},
		{ip: "192.168.1.5", want: true},
		{ip: "192.168.1.6", want: false},
		{ip: "::ffff:10.0.0.1", want: true},
		{ip: "2001:db8::42", want: true},
		{ip: "garbage", want: false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil) should be empty")
	}
	if !NewIPMatcher([]string{"bogus"}).IsEmpty() {
		t.Error("invalid entries should be dropped")
	}
}
