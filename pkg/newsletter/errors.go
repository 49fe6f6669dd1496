package newsletter

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

var (
	ErrSubscribeFailed          = stderrors.New("subscribe failed")
	ErrUnsubscribeFailed        = stderrors.New("unsubscribe failed")
	ErrResubscribeFailed        = stderrors.New("resubscribe failed")
	ErrAddToListsFailed         = stderrors.New("add to lists failed")
	ErrRemoveFromListsFailed    = stderrors.New("remove from lists failed")
	ErrSendCampaignFailed       = stderrors.New("send campaign failed")
	ErrUpdateEmailAddressFailed = stderrors.New("update email address failed")
	ErrGetContactFailed         = stderrors.New("get contact failed")
	ErrIsSubscribedFailed       = stderrors.New("is subscribed check failed")

	// ErrConfiguration is returned when a list name has no configured list.
	ErrConfiguration = stderrors.New("newsletter configuration error")
)

// Error is the single shape every provider failure is converted to.
// Kind is one of the Err* sentinels, Message keeps the upstream text.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes both the kind and the upstream cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Normalize wraps err into an *Error of the given kind. Errors that are
// already normalized under the same kind are returned as is.
func Normalize(kind error, err error) error {
	if err == nil {
		return nil
	}

	var nerr *Error
	if errors.As(err, &nerr) && nerr.Kind == kind {
		return err
	}

	return errors.WithStack(&Error{
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	})
}

// KindOf returns the kind of a normalized error, or nil.
func KindOf(err error) error {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind
	}
	return nil
}
