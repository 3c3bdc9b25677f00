// Package apperrors porte la taxonomie d'erreurs de l'application.
// Chaque composant échoue avec le genre le plus spécifique possible ;
// rien n'est avalé silencieusement.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal            Kind = iota // 500
	Validation                      // 400
	Auth                            // 401
	Forbidden                       // 403
	NotFound                        // 404
	PaymentNotCompleted             // 400
	PaymentProvider                 // 502
)

type Error struct {
	Kind    Kind
	Message string // message destiné au client, sans détail interne
	Err     error  // cause amont, uniquement loggée
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newf(Validation, format, args...) }
func Authf(format string, args ...any) *Error       { return newf(Auth, format, args...) }
func Forbiddenf(format string, args ...any) *Error  { return newf(Forbidden, format, args...) }
func NotFoundf(format string, args ...any) *Error   { return newf(NotFound, format, args...) }

func PaymentNotCompletedf(format string, args ...any) *Error {
	return newf(PaymentNotCompleted, format, args...)
}

// PaymentProviderErr enveloppe une erreur du prestataire de paiement en
// conservant son message amont.
func PaymentProviderErr(message string, cause error) *Error {
	return &Error{Kind: PaymentProvider, Message: message, Err: cause}
}

// Internalf enveloppe une erreur inattendue (persistance, etc.) avec un
// message descriptif ; la cause reste accessible via errors.Unwrap.
func Internalf(cause error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf retourne le genre d'une erreur, Internal par défaut.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// IsKind teste si err porte le genre donné.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
