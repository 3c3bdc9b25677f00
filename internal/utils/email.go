package utils

import (
	"fmt"
	"log"

	"parfumerie_back_end/internal/config"
	"parfumerie_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmation envoie l'e-mail de confirmation de commande.
// Appelé en best-effort après placement : un échec est loggé, jamais
// remonté au client — la commande ne dépend pas de l'e-mail.
func SendOrderConfirmation(cfg *config.Config, to string, order models.Order) error {
	if cfg.SMTPHost == "" {
		log.Println("⚠️ SMTP non configuré — e-mail de confirmation ignoré")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(cfg.SMTPFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande")
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
			</tr>`, item.ProductID.Hex(), item.Quantity, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><th>Article</th><th>Quantité</th><th>Montant</th></tr>
			%s
		</table>
		<p style="font-weight: bold;">Total : %.2f</p>
		<p>Merci pour votre confiance.</p>
	</div>
</body>
</html>`, order.ID.Hex(), itemsHTML, order.Total)
}
