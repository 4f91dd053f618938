package gatewayfakes

import (
	"context"
	"sync"

	"github.com/careplus/go-frontdesk-client/gateway"
)

// FakeGateway is a scripted auth gateway with call counters, used to assert
// which calls the session manager actually makes.
type FakeGateway struct {
	lock sync.Mutex

	LoginResult *gateway.LoginResult
	LoginErr    error

	ValidateOK  bool
	ValidateErr error

	loginCalls    int
	validateCalls int
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) Login(_ context.Context, _ gateway.Credentials) (*gateway.LoginResult, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.loginCalls++
	if g.LoginErr != nil {
		return nil, g.LoginErr
	}
	return g.LoginResult, nil
}

func (g *FakeGateway) ValidateToken(_ context.Context, _ string) (bool, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.validateCalls++
	if g.ValidateErr != nil {
		return false, g.ValidateErr
	}
	return g.ValidateOK, nil
}

func (g *FakeGateway) LoginCalls() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.loginCalls
}

func (g *FakeGateway) ValidateCalls() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.validateCalls
}
