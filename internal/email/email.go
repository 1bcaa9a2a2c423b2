package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/metrics"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Result reports the outcome for one message. Err is nil when it was accepted by the server.
type Result struct {
	To  string
	Err error
}

type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	BatchSize     int
	RatePerSecond float64
}

type sender interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*mail.Msg) error
	Close() error
}

// Dispatcher sends messages over SMTP in batches, one connection per batch,
// throttled by a token bucket. The client holds a single connection, so batches
// from concurrent callers run one at a time.
type Dispatcher struct {
	log       *slog.Logger
	mu        sync.Mutex
	client    sender
	from      string
	batchSize int
	limiter   *rate.Limiter
}

func NewDispatcher(log *slog.Logger, cfg Config) (*Dispatcher, error) {
	const op = "email.NewDispatcher"

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return newDispatcher(log, client, cfg), nil
}

func newDispatcher(log *slog.Logger, client sender, cfg Config) *Dispatcher {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}

	return &Dispatcher{
		log:       log,
		client:    client,
		from:      cfg.From,
		batchSize: batch,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Send delivers messages and returns one result per message in input order.
// The returned error is non-nil only when ctx was cancelled; per-message failures are in the results.
func (d *Dispatcher) Send(ctx context.Context, messages []Message) ([]Result, error) {
	const op = "email.Dispatcher.Send"

	log := d.log.With(slog.String("op", op), slog.Int("messages", len(messages)))

	results := make([]Result, 0, len(messages))
	for start := 0; start < len(messages); start += d.batchSize {
		end := min(start+d.batchSize, len(messages))

		batch, err := d.sendBatch(ctx, messages[start:end])
		results = append(results, batch...)
		if err != nil {
			for _, m := range messages[end:] {
				results = append(results, Result{To: m.To, Err: err})
			}
			return results, fmt.Errorf("%s: %w", op, err)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	metrics.EmailsSent.WithLabelValues("sent").Add(float64(len(results) - failed))
	metrics.EmailsSent.WithLabelValues("failed").Add(float64(failed))
	log.Info("messages dispatched", slog.Int("failed", failed))

	return results, nil
}

func (d *Dispatcher) sendBatch(ctx context.Context, batch []Message) ([]Result, error) {
	results := make([]Result, len(batch))

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.client.DialWithContext(ctx); err != nil {
		d.log.Error("failed to connect to smtp server", sl.Err(err))
		err = apperr.ExternalService("smtp server unavailable", err)
		for i, m := range batch {
			results[i] = Result{To: m.To, Err: err}
		}
		return results, ctx.Err()
	}
	defer func() {
		if err := d.client.Close(); err != nil {
			d.log.Warn("failed to close smtp connection", sl.Err(err))
		}
	}()

	for i, m := range batch {
		if err := d.limiter.Wait(ctx); err != nil {
			for j := i; j < len(batch); j++ {
				results[j] = Result{To: batch[j].To, Err: err}
			}
			return results, err
		}

		msg, err := d.build(m)
		if err == nil {
			if err = d.client.Send(msg); err != nil {
				err = apperr.ExternalService("smtp delivery failed", err)
			}
		}
		if err != nil {
			d.log.Warn("failed to send message", slog.String("to", m.To), sl.Err(err))
		}
		results[i] = Result{To: m.To, Err: err}
	}
	return results, nil
}

func (d *Dispatcher) build(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return nil, apperr.E(apperr.KindValidation, "invalid sender", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, apperr.E(apperr.KindValidation, "invalid recipient", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTMLBody)
	return msg, nil
}
