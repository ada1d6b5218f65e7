package net

import (
	"net"
	"testing"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
)

func TestEntryAddr(t *testing.T) {
	assert.Equal(t, "", entryAddr(nil))
	assert.Equal(t, "", entryAddr(&mdns.ServiceEntry{Port: 8888}))
	assert.Equal(t, "", entryAddr(&mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2)}))
	assert.Equal(t, "10.0.0.2:8888", entryAddr(&mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2), Port: 8888}))
}

func TestGetOutgoingIPParses(t *testing.T) {
	ip, err := GetOutgoingIP()
	if err != nil {
		t.Skipf("no network: %v", err)
	}
	assert.NotNil(t, net.ParseIP(ip))
}

func TestPendingDrainsForwardedAnswer(t *testing.T) {
	found := make(chan string, 1)
	_, ok := pending(found)
	assert.False(t, ok)

	found <- "10.0.0.2:8888"
	addr, ok := pending(found)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2:8888", addr)
}
