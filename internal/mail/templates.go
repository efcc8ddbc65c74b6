package mail

import (
	"bytes"
	"html/template"
)

type Recipient struct {
	Name  string
	Email string
	Token string
}

var (
	confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<p>Hola {{.Name}}, has creado tu cuenta en CashTrackr. ¡Ya está casi lista!</p>
<p>Visita el siguiente enlace:</p>
<a href="{{.Link}}">Confirmar cuenta</a>
<p>E ingresa el siguiente código: <b>{{.Token}}</b></p>`))

	passwordResetTemplate = template.Must(template.New("password-reset").Parse(`
<p>Hola {{.Name}}, has solicitado reestablecer tu contraseña.</p>
<p>Visita el siguiente enlace:</p>
<a href="{{.Link}}">Reestablecer contraseña</a>
<p>E ingresa el siguiente código: <b>{{.Token}}</b></p>`))
)

// AuthEmails renders the account emails sent by the auth flow.
type AuthEmails struct {
	from        string
	frontendURL string
}

func NewAuthEmails(from, frontendURL string) *AuthEmails {
	return &AuthEmails{from: from, frontendURL: frontendURL}
}

func (e *AuthEmails) Confirmation(r Recipient) (Message, error) {
	return e.render(r, "CashTrackr - Confirmación de tu cuenta", confirmationTemplate, "/auth/confirm-account")
}

func (e *AuthEmails) PasswordReset(r Recipient) (Message, error) {
	return e.render(r, "CashTrackr - Reestablecer Contraseña", passwordResetTemplate, "/auth/new-password")
}

func (e *AuthEmails) render(r Recipient, subject string, tmpl *template.Template, path string) (Message, error) {
	var body bytes.Buffer
	err := tmpl.Execute(&body, struct {
		Name  string
		Token string
		Link  string
	}{
		Name:  r.Name,
		Token: r.Token,
		Link:  e.frontendURL + path,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		From:    e.from,
		To:      r.Email,
		Subject: subject,
		HTML:    body.String(),
	}, nil
}
