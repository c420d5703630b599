package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

var tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

// kindRules are checked in order; the first match names the failure.
var kindRules = []struct {
	kind  string
	match func(error) bool
}{
	{"timeout", func(err error) bool {
		var ne net.Error
		return errors.Is(err, context.DeadlineExceeded) || errors.As(err, &ne) && ne.Timeout()
	}},
	{"flood", func(err error) bool {
		var fe tele.FloodError
		return errors.As(err, &fe)
	}},
	{"dns", func(err error) bool {
		var de *net.DNSError
		return errors.As(err, &de)
	}},
	{"dial", func(err error) bool {
		var oe *net.OpError
		return errors.As(err, &oe) && oe.Op == "dial"
	}},
	{"tls", func(err error) bool {
		var ae tls.AlertError
		var ve *tls.CertificateVerificationError
		return errors.As(err, &ae) || errors.As(err, &ve)
	}},
}

// Classify names a send failure for logs and the send metric: timeout,
// flood, dns, dial, tls, http_4xx, http_5xx or unknown. Nil yields "".
func Classify(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range kindRules {
		if r.match(err) {
			return r.kind
		}
	}
	switch code := statusCode(err); {
	case code >= 500:
		return "http_5xx"
	case code >= 400:
		return "http_4xx"
	}
	return "unknown"
}

// statusCode returns the Bot API error code carried by err, falling back to a
// trailing "(NNN)" in the message as telebot formats unknown API errors.
func statusCode(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}
	msg := strings.TrimSpace(err.Error())
	open := strings.LastIndexByte(msg, '(')
	if open < 0 || !strings.HasSuffix(msg, ")") {
		return 0
	}
	code, convErr := strconv.Atoi(msg[open+1 : len(msg)-1])
	if convErr != nil {
		return 0
	}
	return code
}

// Redact returns err's message with bot tokens in request URLs masked.
func Redact(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}
