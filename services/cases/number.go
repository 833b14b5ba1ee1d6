package cases

import (
	"strconv"
	"sync"
	"time"
)

// NumberSource hands out complaint numbers of the form C<unix-millis>. Numbers
// strictly increase within a process even when two complaints are filed in
// the same millisecond; the unique index catches collisions across processes.
type NumberSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNumberSource() *NumberSource {
	return &NumberSource{now: time.Now}
}

func (n *NumberSource) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	return "C" + strconv.FormatInt(ms, 10)
}
