package cli

import (
	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/infrastructure/booking"
	"github.com/example/slotwatch/internal/infrastructure/config"
	"github.com/example/slotwatch/internal/infrastructure/notify"
	"github.com/example/slotwatch/internal/infrastructure/pushplus"
	"github.com/example/slotwatch/internal/infrastructure/ses"
	"github.com/example/slotwatch/internal/infrastructure/voice"
)

func newSource(cfg config.Config) availability.SlotSource {
	c := booking.NewClient(cfg.Endpoint, cfg.FetchTimeout)
	if cfg.Variant == config.VariantStatic {
		return booking.NewStaticSource(c)
	}
	return booking.NewFormSource(c)
}

// newNotifiers returns the channels in delivery order: push, email, then the voice call.
func newNotifiers(cfg config.Config) []availability.Notifier {
	footer := notify.Footer{BookingURL: cfg.BookingURL, ContactPhone: cfg.ContactPhone}
	s := cfg.Secrets
	return []availability.Notifier{
		pushplus.New(pushplus.Config{
			Token:    s.PushToken,
			Title:    cfg.PushTitle,
			Endpoint: cfg.PushEndpoint,
			Footer:   footer,
		}),
		ses.New(ses.Config{
			Region:          s.SES.Region,
			AccessKeyID:     s.SES.AccessKeyID,
			SecretAccessKey: s.SES.SecretAccessKey,
			From:            s.SES.From,
			To:              s.SES.To,
			Subject:         cfg.PushTitle,
			Footer:          footer,
		}),
		voice.New(voice.Config{
			AccountSID: s.Twilio.AccountSID,
			AuthToken:  s.Twilio.AuthToken,
			FromNumber: s.Twilio.FromNumber,
			ToNumber:   s.Twilio.ToNumber,
			Phrase:     cfg.AlertPhrase,
			Repeats:    cfg.AlertRepeats,
		}),
	}
}
