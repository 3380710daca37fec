package middleware

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader correlates a request across the client, the API and the logs
const RequestIDHeader = "X-Request-ID"

// accessEntry is one line of the access log
type accessEntry struct {
	requestID string
	method    string
	target    string
	status    int
	latency   time.Duration
	bytes     int
	clientIP  string
	branch    string
	errs      []string
}

// level grades the entry so failed requests stand out when grepping
func (e accessEntry) level() string {
	switch {
	case e.status >= 500:
		return "ERROR"
	case e.status >= 400:
		return "WARN"
	default:
		return "INFO"
	}
}

// String renders the entry as key=value pairs, quoting free text.
func (e accessEntry) String() string {
	var b strings.Builder
	field := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}

	field("level", e.level())
	field("req", shortID(e.requestID))
	field("method", e.method)
	field("path", strconv.Quote(e.target))
	field("status", strconv.Itoa(e.status))
	field("latency", e.latency.Round(time.Microsecond).String())
	field("bytes", strconv.Itoa(e.bytes))
	field("ip", e.clientIP)
	if e.branch != "" {
		field("branch", e.branch)
	}
	if len(e.errs) > 0 {
		field("err", strconv.Quote(strings.Join(e.errs, "; ")))
	}
	return b.String()
}

// ensureRequestID reuses the caller's X-Request-ID or mints one, and echoes it back.
func ensureRequestID(c *gin.Context) string {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		c.Request.Header.Set(RequestIDHeader, id)
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	return id
}

// LoggerMiddleware writes one access line per request. The branch is only
// known once AuthMiddleware has run further down the chain.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ensureRequestID(c)
		started := time.Now()
		target := c.Request.URL.RequestURI()

		c.Next()

		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		log.Print(accessEntry{
			requestID: id,
			method:    c.Request.Method,
			target:    target,
			status:    c.Writer.Status(),
			latency:   time.Since(started),
			bytes:     size,
			clientIP:  c.ClientIP(),
			branch:    c.GetString("branch_code"),
			errs:      c.Errors.Errors(),
		})
	}
}

// shortID keeps the first 8 characters of a request id for log lines
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
