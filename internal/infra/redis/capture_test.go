package redis

import "testing"

func TestEndpointLabel(t *testing.T) {
	cases := []struct {
		endpoint string
		want     string
	}{
		{"ws://192.168.4.1:80/ws", "192.168.4.1:80/ws"},
		{"ws://example.com/stream", "example.com/stream"},
		{"not a url", "not a url"},
	}
	for _, tc := range cases {
		if got := endpointLabel(tc.endpoint); got != tc.want {
			t.Errorf("endpointLabel(%q): expected %q, got %q", tc.endpoint, tc.want, got)
		}
	}
}

func TestCaptureKey(t *testing.T) {
	if got := captureKey("ws://192.168.4.1:80/ws"); got != "wsprobe:frames:192.168.4.1:80/ws" {
		t.Errorf("unexpected capture key: %s", got)
	}
}
