package pushplus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/infrastructure/notify"
	"github.com/example/slotwatch/internal/internaltypes"
)

const DefaultEndpoint = "http://www.pushplus.plus/send"

type Config struct {
	Token    string
	Title    string
	Endpoint string
	Footer   notify.Footer
}

// Notifier pushes the aggregate report as one HTML message.
type Notifier struct {
	hc  *http.Client
	cfg Config
}

func New(cfg Config) *Notifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Notifier{hc: &http.Client{Timeout: 10 * time.Second}, cfg: cfg}
}

func (n *Notifier) Name() string { return "pushplus" }

type sendRequest struct {
	Token    string `json:"token"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Template string `json:"template"`
}

func (n *Notifier) Notify(ctx context.Context, report availability.AggregateReport) error {
	if strings.TrimSpace(n.cfg.Token) == "" {
		return fmt.Errorf("pushplus: PUSH_TOKEN is empty: %w", internaltypes.ErrNotConfigured)
	}
	content, err := notify.Render(report, n.cfg.Footer)
	if err != nil {
		return fmt.Errorf("pushplus: render message: %w", err)
	}
	b, err := json.Marshal(sendRequest{Token: n.cfg.Token, Title: n.cfg.Title, Content: content, Template: "html"})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("pushplus: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.hc.Do(req)
	if err != nil {
		return fmt.Errorf("pushplus: send: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("pushplus: send failed (status=%d)", res.StatusCode)
	}
	return nil
}
