// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import "github.com/pdiddy/research-projects/internal/errors"

// Kind classifies a user-facing notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindRollingBack
	KindRollbackFailed
	KindValidation
	KindConflict
	KindPermission
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRollingBack:
		return "rolling_back"
	case KindRollbackFailed:
		return "rollback_failed"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	}
	return "error"
}

// Notification is a message for the user about a saga outcome.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier renders notifications. The saga does not depend on how, or
// whether, they are displayed.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discard struct{}

func (discard) Notify(Notification) {}

// Outcome messages.
const (
	MsgCreated        = "Проєкт успішно створено"
	MsgUpdated        = "Проєкт успішно оновлено"
	MsgCreateRollback = "Не вдалося завершити створення проєкту. Повернення назад..."
	MsgUpdateRollback = "Не вдалося завершити оновлення проєкту. Повернення назад..."
	MsgRollbackFailed = "Не вдалося скасувати зміни. Перевірте дані проєкту вручну"
	MsgTypeChanged    = "Тип проєкту не можна змінити"
)

// kindOf maps an error category to a notification kind.
func kindOf(err error) Kind {
	switch errors.Classify(err) {
	case errors.CategoryValidation:
		return KindValidation
	case errors.CategoryConflict:
		return KindConflict
	case errors.CategoryPermission:
		return KindPermission
	}
	return KindError
}
