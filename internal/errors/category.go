// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package errors

// Category groups errors by how they are presented to the user.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryValidation
	CategoryConflict
	CategoryPermission
	CategoryNotFound
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryConflict:
		return "conflict"
	case CategoryPermission:
		return "permission"
	case CategoryNotFound:
		return "not_found"
	}
	return "generic"
}

// User-facing messages per category.
const (
	MsgValidation = "Перевірте правильність введених даних"
	MsgConflict   = "Проєкт з такою назвою вже існує"
	MsgPermission = "Недостатньо прав для виконання цієї дії"
	MsgNotFound   = "Проєкт не знайдено"
	MsgGeneric    = "Сталася помилка. Спробуйте ще раз пізніше"
)

// Classify returns the presentation category of err.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryGeneric
	case Is(err, ErrValidation):
		return CategoryValidation
	case Is(err, ErrConflict):
		return CategoryConflict
	case Is(err, ErrForbidden):
		return CategoryPermission
	case Is(err, ErrNotFound):
		return CategoryNotFound
	}
	return CategoryGeneric
}

// UserMessage returns the message to show for err. Validation errors raised
// by the request builders carry their own message; everything else falls
// back to the category text.
func UserMessage(err error) string {
	var missing *MissingRequiredFieldError
	if As(err, &missing) && missing.Message != "" {
		return missing.Message
	}
	var noID *MissingIdentifierError
	if As(err, &noID) && noID.Message != "" {
		return noID.Message
	}
	var invalid *InvalidFieldError
	if As(err, &invalid) && invalid.Message != "" {
		return invalid.Message
	}

	c := Classify(err)
	if c == CategoryValidation {
		if hints := GetAllHints(err); len(hints) > 0 {
			return hints[0]
		}
	}
	return CategoryMessage(c)
}

// CategoryMessage returns the fallback text for c.
func CategoryMessage(c Category) string {
	switch c {
	case CategoryValidation:
		return MsgValidation
	case CategoryConflict:
		return MsgConflict
	case CategoryPermission:
		return MsgPermission
	case CategoryNotFound:
		return MsgNotFound
	}
	return MsgGeneric
}
