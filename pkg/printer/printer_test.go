package printer

import (
	"bytes"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLayout(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "325.00").
		ItemLine(2, "Three piece suit deluxe", "200.00").
		Wrap("collar stain and missing button on left cuff")

	out := string(doc.Bytes())
	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte{ESC, '@'}))
	assert.Contains(t, out, "Total:        325.00\n")
	assert.Contains(t, out, "2x Three piec 200.00\n")

	for _, line := range strings.Split(out[2:], "\n") {
		assert.LessOrEqual(t, len(line), 20, line)
	}
}

func TestDocumentMeasuresPrintedColumns(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("洗衣", "5.00").
		ItemLine(1, "ドライクリーニング", "9.00")

	out := string(doc.Bytes())
	assert.Contains(t, out, "洗衣  5.00\n")
	assert.Contains(t, out, "1x ド 9.00\n")
}

func TestWrapColumns(t *testing.T) {
	assert.Equal(t, []string{"Issues:", "Stain,", "Torn"}, wrapColumns("Issues: Stain, Torn", 7))
	assert.Equal(t, []string{"abcde", "fgh", "ij"}, wrapColumns("abcdefgh ij", 5))
	assert.Empty(t, wrapColumns("   ", 5))
}

func TestNewSelectsTransport(t *testing.T) {
	p, err := New(Config{Type: ""})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.False(t, p.IsConnected())

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestNetworkPrinterWritesPayload(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String(), time.Second)
	require.NoError(t, p.Print([]byte("ticket")))

	select {
	case data := <-received:
		assert.Equal(t, "ticket", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("printer payload not received")
	}
}
