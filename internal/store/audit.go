package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"labstock/internal/models"
)

const auditTimeFormat = "2006-01-02 15:04:05"

var detailsSanitizer = strings.NewReplacer("\n", " ", "\r", " ")

// AuditLog is the append-only action record. Entries are proper CSV so that
// commas inside the details field survive a round trip.
type AuditLog struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path, now: time.Now}
}

// Append writes one (timestamp, user, action, details) record.
func (l *AuditLog) Append(user, action, details string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	w := csv.NewWriter(f)
	rec := []string{
		l.now().Format(auditTimeFormat),
		user,
		action,
		detailsSanitizer.Replace(details),
	}
	if err := w.Write(rec); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Tail returns the last n entries. Cost is linear in total log size.
func (l *AuditLog) Tail(n int) ([]models.AuditEntry, error) {
	entries, err := l.readAll()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func (l *AuditLog) readAll() ([]models.AuditEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	entries := make([]models.AuditEntry, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		e := models.AuditEntry{Timestamp: rec[0], User: rec[1], Action: rec[2]}
		if len(rec) > 3 {
			e.Details = strings.Join(rec[3:], ", ")
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Raw returns the log file bytes for download. Missing file means empty log.
func (l *AuditLog) Raw() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return b, err
}
