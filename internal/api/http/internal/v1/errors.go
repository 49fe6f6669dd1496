package v1

import "github.com/vibe-gaming/newsletter/pkg/newsletter"

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidRequestCode    = 1000
	InvalidRequestMessage = "invalid request"

	ListNotConfiguredCode    = 2001
	ListNotConfiguredMessage = "list is not configured"

	SubscribeFailedCode             = 3001
	SubscribeFailedMessage          = "subscribe failed"
	UnsubscribeFailedCode           = 3002
	UnsubscribeFailedMessage        = "unsubscribe failed"
	ResubscribeFailedCode           = 3003
	ResubscribeFailedMessage        = "resubscribe failed"
	AddToListsFailedCode            = 3004
	AddToListsFailedMessage         = "add to lists failed"
	RemoveFromListsFailedCode       = 3005
	RemoveFromListsFailedMessage    = "remove from lists failed"
	SendCampaignFailedCode          = 3006
	SendCampaignFailedMessage       = "send campaign failed"
	UpdateEmailAddressFailedCode    = 3007
	UpdateEmailAddressFailedMessage = "update email address failed"
	GetContactFailedCode            = 3008
	GetContactFailedMessage         = "get contact failed"
	IsSubscribedFailedCode          = 3009
	IsSubscribedFailedMessage       = "subscription check failed"

	ContactNotFoundCode    = 4004
	ContactNotFoundMessage = "contact not found"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	InvalidRequestCode:           InvalidRequestMessage,
	ListNotConfiguredCode:        ListNotConfiguredMessage,
	SubscribeFailedCode:          SubscribeFailedMessage,
	UnsubscribeFailedCode:        UnsubscribeFailedMessage,
	ResubscribeFailedCode:        ResubscribeFailedMessage,
	AddToListsFailedCode:         AddToListsFailedMessage,
	RemoveFromListsFailedCode:    RemoveFromListsFailedMessage,
	SendCampaignFailedCode:       SendCampaignFailedMessage,
	UpdateEmailAddressFailedCode: UpdateEmailAddressFailedMessage,
	GetContactFailedCode:         GetContactFailedMessage,
	IsSubscribedFailedCode:       IsSubscribedFailedMessage,
	ContactNotFoundCode:          ContactNotFoundMessage,
}

var kindCodes = map[error]ErrorCode{
	newsletter.ErrSubscribeFailed:          SubscribeFailedCode,
	newsletter.ErrUnsubscribeFailed:        UnsubscribeFailedCode,
	newsletter.ErrResubscribeFailed:        ResubscribeFailedCode,
	newsletter.ErrAddToListsFailed:         AddToListsFailedCode,
	newsletter.ErrRemoveFromListsFailed:    RemoveFromListsFailedCode,
	newsletter.ErrSendCampaignFailed:       SendCampaignFailedCode,
	newsletter.ErrUpdateEmailAddressFailed: UpdateEmailAddressFailedCode,
	newsletter.ErrGetContactFailed:         GetContactFailedCode,
	newsletter.ErrIsSubscribedFailed:       IsSubscribedFailedCode,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	message, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{
			ErrorCode:    UnknownErrorCode,
			ErrorMessage: UnknownErrorMessage,
		}
	}

	return &ErrorStruct{
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
