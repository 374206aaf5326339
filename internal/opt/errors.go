package opt

import "errors"

var (
	// ErrInstanceInvalid — данные экземпляра противоречивы; фатально.
	ErrInstanceInvalid = errors.New("opt: instance invalid")

	// ErrNecessaryCondition — дешевая проверка доказала, что решения нет; фатально.
	ErrNecessaryCondition = errors.New("opt: necessary condition violated")

	// ErrUnrepairable — одна попытка ремонта не восстановила допустимость.
	ErrUnrepairable = errors.New("opt: candidate unrepairable")

	// ErrNoFeasibleStart — построение исчерпало лимит попыток; рестарт пропускается.
	ErrNoFeasibleStart = errors.New("opt: no feasible start")

	// ErrNoMove — окрестность не дала ни одного допустимого хода.
	ErrNoMove = errors.New("opt: no move available")

	// ErrNoSolution — ни один рестарт не дал допустимого решения.
	ErrNoSolution = errors.New("opt: no solution found")
)

// Fatal сообщает, должна ли ошибка прерывать процесс.
func Fatal(err error) bool {
	return errors.Is(err, ErrInstanceInvalid) || errors.Is(err, ErrNecessaryCondition)
}
