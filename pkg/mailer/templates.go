package mailer

import (
	"fmt"
	"html"
)

const resetPasswordSubject = "Réinitialisez votre mot de passe"

// ResetPasswordEmail renders the reset-password message body.
func ResetPasswordEmail(name, resetURL string) (subject, body string) {
	greeting := "Bonjour,"
	if name != "" {
		greeting = fmt.Sprintf("Bonjour %s,", html.EscapeString(name))
	}

	body = fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Réinitialisation de votre mot de passe</h2>
  <p>%s</p>
  <p>Vous avez demandé la réinitialisation de votre mot de passe Rythmons.
  Cliquez sur le lien ci-dessous pour en choisir un nouveau :</p>
  <p><a href="%s">Réinitialiser mon mot de passe</a></p>
  <p>Ce lien expire dans une heure. Si vous n'êtes pas à l'origine de cette
  demande, vous pouvez ignorer cet e-mail.</p>
</div>`, greeting, resetURL)

	return resetPasswordSubject, body
}
