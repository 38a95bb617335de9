package appointments

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidDateFormat = errors.New("invalid appointment date format")
	ErrPastDate          = errors.New("appointment date is in the past")
	ErrSlotTaken         = errors.New("slot already taken")
)

const (
	EntityClient     = "client"
	EntityAnimalType = "animal_type"
)

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ValidationError: faltan campos obligatorios en la solicitud.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(sortedKeys(e.Fields), ", ")
}

// Códigos estables que ve el cliente HTTP (y el bot).
const (
	CodeInvalidFormat   = "invalid_format"
	CodePastDate        = "past_date"
	CodeNotFound        = "not_found"
	CodeSlotTaken       = "slot_taken"
	CodeValidationError = "validation_error"
)

// Describe traduce un error de reserva a código + mensaje para el usuario.
// ok=false si el error no pertenece a la taxonomía (=> 500).
func Describe(err error) (code, message string, ok bool) {
	var nf *NotFoundError
	var ve *ValidationError

	switch {
	case errors.Is(err, ErrInvalidDateFormat):
		return CodeInvalidFormat, "Неверный формат даты и времени. Используйте, пожалуйста, формат 'дд.мм.гггг чч:мм'", true
	case errors.Is(err, ErrPastDate):
		return CodePastDate, "Нельзя записаться на прием в прошедшем времени", true
	case errors.As(err, &nf):
		if nf.Entity == EntityClient {
			return CodeNotFound, "Клиент с указанным ID не существует", true
		}
		return CodeNotFound, "Вид животного с указанным ID не существует", true
	case errors.Is(err, ErrSlotTaken):
		return CodeSlotTaken, "Выбранный слот уже занят", true
	case errors.As(err, &ve):
		return CodeValidationError, "Обязательные поля не заполнены: " + strings.Join(sortedKeys(ve.Fields), ", "), true
	default:
		return "", "", false
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
