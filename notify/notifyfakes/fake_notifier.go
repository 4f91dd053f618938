package notifyfakes

import (
	"sync"

	"github.com/careplus/go-frontdesk-client/notify"
)

var _ notify.Notifier = (*FakeNotifier)(nil)

// FakeNotifier records every notification for assertions in tests.
type FakeNotifier struct {
	lock   sync.Mutex
	infos  []string
	errors []string
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Info(message string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.infos = append(n.infos, message)
}

func (n *FakeNotifier) Error(message string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.errors = append(n.errors, message)
}

func (n *FakeNotifier) Infos() []string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]string(nil), n.infos...)
}

func (n *FakeNotifier) Errors() []string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]string(nil), n.errors...)
}
