package database

import (
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// warningRecorder keeps the WARNING notices each connection received since
// they were last taken. Notices of lower severity (NOTICE, INFO, DEBUG,
// LOG) are ignored.
type warningRecorder struct {
	mu    sync.Mutex
	conns map[*pgconn.PgConn][]string
}

func newWarningRecorder() *warningRecorder {
	return &warningRecorder{conns: make(map[*pgconn.PgConn][]string)}
}

// onNotice matches pgconn.NoticeHandler.
func (w *warningRecorder) onNotice(conn *pgconn.PgConn, n *pgconn.Notice) {
	if n == nil || !strings.EqualFold(n.Severity, "WARNING") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.conns[conn] = append(w.conns[conn], n.Message)
}

// take returns and clears the warnings recorded for conn.
func (w *warningRecorder) take(conn *pgconn.PgConn) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	msgs := w.conns[conn]
	delete(w.conns, conn)
	return msgs
}

// forget drops state for a connection that is being closed.
func (w *warningRecorder) forget(conn *pgconn.PgConn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.conns, conn)
}
