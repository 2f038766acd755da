package notify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lgb-dashboard/internal/analytics/application/events"
	"lgb-dashboard/internal/observability/metrics"
	production "lgb-dashboard/internal/production/domain"
)

// Clock provides time for deduplication.
type Clock interface {
	Now() time.Time
}

type sendRecord struct {
	at      time.Time
	hash    string
	pending bool
}

// Notifier renders AlertsRaised events into digests and sends them through a channel.
// Identical digests for the same filter state are suppressed within the dedupe window.
type Notifier struct {
	channel        Channel
	template       *Template
	clock          Clock
	logger         *zap.Logger
	mu             sync.Mutex
	sent           map[string]sendRecord
	dedupeWindow   time.Duration
	requestTimeout time.Duration
}

// Option configures the notifier.
type Option func(*Notifier)

// WithClock overrides the default clock.
func WithClock(clock Clock) Option {
	return func(n *Notifier) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// WithLogger assigns a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithRequestTimeout bounds a single channel send.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(n *Notifier) {
		if timeout > 0 {
			n.requestTimeout = timeout
		}
	}
}

// WithDedupeWindow suppresses identical notifications within the window.
func WithDedupeWindow(window time.Duration) Option {
	return func(n *Notifier) {
		if window > 0 {
			n.dedupeWindow = window
		}
	}
}

// NewNotifier constructs an alert notifier.
func NewNotifier(channel Channel, template *Template, opts ...Option) (*Notifier, error) {
	if channel == nil {
		return nil, errors.New("alert notifier: nil channel")
	}
	if template == nil {
		defaultTemplate, err := NewTemplate("")
		if err != nil {
			return nil, err
		}
		template = defaultTemplate
	}
	n := &Notifier{
		channel:        channel,
		template:       template,
		clock:          systemClock{},
		logger:         zap.NewNop(),
		sent:           make(map[string]sendRecord),
		requestTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NotifyAlerts sends the digest of an AlertsRaised event unless it was just sent.
func (n *Notifier) NotifyAlerts(ctx context.Context, event events.AlertsRaised) error {
	if n == nil || n.channel == nil || len(event.Alerts) == 0 {
		return nil
	}
	data := buildTemplateData(event)
	content, err := n.template.Render(data)
	if err != nil {
		metrics.IncAlertNotification("error")
		return err
	}

	key := data.Filters
	hash := hashContent(strings.Join(data.Alerts, "\n"))
	prev, claimed := n.claim(key, hash)
	if !claimed {
		metrics.IncAlertNotification("suppressed")
		return nil
	}

	if n.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.requestTimeout)
		defer cancel()
	}
	msg := Message{
		Title: fmt.Sprintf("LGB Alerts (%d) %s", len(data.Alerts), key),
		Text:  content,
	}
	if err := n.channel.Send(ctx, msg); err != nil {
		n.release(key, hash, prev)
		metrics.IncAlertNotification("error")
		n.logger.Warn("alert notification failed", zap.String("filters", key), zap.Error(err))
		return err
	}
	n.confirm(key, hash)
	metrics.IncAlertNotification("success")
	n.logger.Info("alert notification sent", zap.String("filters", key), zap.Int("alerts", len(data.Alerts)))
	return nil
}

func buildTemplateData(event events.AlertsRaised) TemplateData {
	messages := make([]string, 0, len(event.Alerts))
	for _, alert := range event.Alerts {
		messages = append(messages, alert.Message)
	}
	raisedAt := event.OccurredAt
	if raisedAt.IsZero() {
		raisedAt = time.Now()
	}
	return TemplateData{
		Filters:     describeCriteria(event.Criteria),
		RecordCount: event.RecordCount,
		LastUpdated: event.LastUpdated,
		Alerts:      messages,
		RaisedAt:    raisedAt.UTC().Format(time.RFC3339),
	}
}

func describeCriteria(criteria production.Criteria) string {
	criteria = criteria.Normalize()
	parts := make([]string, 0, len(production.Dimensions)+1)
	for _, dimension := range production.Dimensions {
		value, ok := criteria.Selected(dimension)
		if !ok {
			value = production.All
		}
		parts = append(parts, string(dimension)+"="+value)
	}
	parts = append(parts, "range="+criteria.Start+".."+criteria.End)
	return strings.Join(parts, " ")
}

// claim reserves key for hash under the lock, so concurrent identical digests
// send once. It returns the record it replaced for release.
func (n *Notifier) claim(key, hash string) (*sendRecord, bool) {
	if n.dedupeWindow <= 0 {
		return nil, true
	}
	now := n.clock.Now().UTC()
	n.mu.Lock()
	defer n.mu.Unlock()
	record, ok := n.sent[key]
	if ok && record.hash == hash && (record.pending || now.Sub(record.at) < n.dedupeWindow) {
		return nil, false
	}
	n.sent[key] = sendRecord{at: now, hash: hash, pending: true}
	if !ok {
		return nil, true
	}
	return &record, true
}

// confirm turns a pending claim into the sent record.
func (n *Notifier) confirm(key, hash string) {
	if n.dedupeWindow <= 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if record, ok := n.sent[key]; ok && record.pending && record.hash == hash {
		n.sent[key] = sendRecord{at: n.clock.Now().UTC(), hash: hash}
	}
}

// release drops a failed claim and restores what it replaced.
func (n *Notifier) release(key, hash string, prev *sendRecord) {
	if n.dedupeWindow <= 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	record, ok := n.sent[key]
	if !ok || !record.pending || record.hash != hash {
		return
	}
	if prev == nil {
		delete(n.sent, key)
		return
	}
	n.sent[key] = *prev
}

func hashContent(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:8])
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
