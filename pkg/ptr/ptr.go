package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для передачи опциональных параметров в фильтры и запросы
func Ptr[T any](v T) *T {
	return &v
}
