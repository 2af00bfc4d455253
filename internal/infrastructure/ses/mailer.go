package ses

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/infrastructure/notify"
	"github.com/example/slotwatch/internal/internaltypes"
)

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	From            string
	To              string

	Subject string
	Footer  notify.Footer
}

func (c Config) complete() bool {
	for _, v := range []string{c.Region, c.AccessKeyID, c.SecretAccessKey, c.From, c.To} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mailer emails the aggregate report through AWS SES.
type Mailer struct {
	cfg    Config
	client sendEmailAPI
}

func New(cfg Config) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.complete() {
		m.client = ses.NewFromConfig(aws.Config{
			Region: cfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			),
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		})
	}
	return m
}

func (m *Mailer) Name() string { return "ses" }

func (m *Mailer) Notify(ctx context.Context, report availability.AggregateReport) error {
	if !m.cfg.complete() || m.client == nil {
		return fmt.Errorf("ses: region, credentials, from and to addresses are required: %w", internaltypes.ErrNotConfigured)
	}
	body, err := notify.Render(report, m.cfg.Footer)
	if err != nil {
		return fmt.Errorf("ses: render message: %w", err)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(m.cfg.From),
		Destination: &types.Destination{
			ToAddresses: []string{m.cfg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(m.cfg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses: send email: %w", err)
	}
	return nil
}
