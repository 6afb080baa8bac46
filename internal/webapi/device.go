package webapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
)

// userAgent matches the Chrome-on-macOS build the fingerprint headers
// describe. The backend cross-checks these against each other.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/131.0.0.0 Safari/537.36"

// deviceInfo is the payload of the x-device header: the synthetic device
// descriptor the vendor's web client sends with every request.
type deviceInfo struct {
	Platform  string `json:"platform"`
	OS        string `json:"os"`
	Device    string `json:"device"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	ID        string `json:"id"`
	Channel   string `json:"channel"`
	Campaign  string `json:"campaign"`
	Websocket string `json:"websocket"`
}

// newDeviceID generates a device identifier in the backend's own format:
// a fixed 4-hex prefix followed by 20 random hex characters.
func newDeviceID() string {
	return "65a0" + randomHex(10)
}

// randomHex returns 2*n lowercase hex characters from a CSPRNG.
func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure means the platform RNG is broken; there is
		// no sane way to continue issuing identifiers.
		panic("webapi: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// xDevice renders the x-device header value for this client's device identity.
func (c *Client) xDevice() string {
	data, _ := json.Marshal(deviceInfo{
		Platform: "web",
		OS:       "OS X",
		Device:   "Chrome 131.0.0.0",
		Version:  6072,
		ID:       c.deviceID,
		Channel:  "website",
	})
	return string(data)
}

// setHeaders applies the full browser fingerprint plus the session cookie
// when one exists. This is what makes the backend accept the traffic as if
// it came from its own web client.
func (c *Client) setHeaders(req *http.Request, contentType string) {
	h := req.Header
	h.Set("User-Agent", userAgent)
	h.Set("x-device", c.xDevice())
	h.Set("Content-Type", contentType)
	h.Set("Origin", c.origin)
	h.Set("Referer", c.origin+"/")
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("Accept-Encoding", "identity")
	h.Set("Sec-Ch-Ua", `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"macOS"`)
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-site")
	h.Set("X-Requested-With", "XMLHttpRequest")

	if c.sessionToken != "" {
		h.Set("Cookie", "t="+c.sessionToken)
	}
}
