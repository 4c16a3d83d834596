package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	mx  map[string]bool
	ips map[string]bool

	calls int
}

func (s *stubResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	s.calls++
	if s.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (s *stubResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	s.calls++
	if s.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(192, 0, 2, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "clinic.example", EmailDomain("ada@Clinic.Example."))
	assert.Equal(t, "b.example", EmailDomain(`"a@b"@b.example`))
	assert.Empty(t, EmailDomain("no-at-sign"))
	assert.Empty(t, EmailDomain("@clinic.example"))
	assert.Empty(t, EmailDomain("ada@"))
	assert.Empty(t, EmailDomain("ada@localhost"))
}

func TestEmailDomainAccepts(t *testing.T) {
	r := &stubResolver{
		mx:  map[string]bool{"mail.example": true},
		ips: map[string]bool{"web.example": true},
	}
	ctx := context.Background()

	assert.True(t, EmailDomainAccepts(ctx, r, "ada@mail.example"))
	assert.True(t, EmailDomainAccepts(ctx, r, "ada@web.example"))
	assert.False(t, EmailDomainAccepts(ctx, r, "ada@nowhere.example"))
}

func TestEmailDomainAccepts_MalformedSkipsLookup(t *testing.T) {
	r := &stubResolver{}
	assert.False(t, EmailDomainAccepts(context.Background(), r, "ada"))
	assert.Zero(t, r.calls)
}
