package email

import (
	"context"
	"fmt"

	"academy_backend/internal/logger"
)

// Receipt - данные чека об оплате
type Receipt struct {
	To        string
	Name      string
	Item      string
	Amount    float64
	Currency  string
	SessionID string
}

// Mailer собирает письма из шаблонов и отдает их Sender
type Mailer struct {
	sender    Sender
	templates *TemplateManager
	siteName  string
}

func NewMailer(sender Sender, siteName string) *Mailer {
	if sender == nil {
		sender = NoopSender{}
	}
	return &Mailer{sender: sender, templates: NewTemplateManager(), siteName: siteName}
}

func (m *Mailer) SendPaymentReceipt(ctx context.Context, r Receipt) error {
	body, err := m.templates.Render(TemplatePaymentReceipt, TemplateData{
		"SiteName":  m.siteName,
		"Name":      r.Name,
		"Item":      r.Item,
		"Amount":    fmt.Sprintf("%.2f", r.Amount),
		"Currency":  r.Currency,
		"SessionID": r.SessionID,
	})
	if err != nil {
		return err
	}

	if err := m.sender.Send(&Email{
		To:       []string{r.To},
		Subject:  m.siteName + " - potvrda uplate",
		HTMLBody: body,
	}); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Payment receipt sent", "to", r.To)
	return nil
}
