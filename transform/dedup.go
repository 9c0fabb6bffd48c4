package transform

// ResolveLatest устраняет дубликаты по натуральному ключу: для каждого
// значения ключа сохраняется ровно одна запись — та, что максимальна по
// orderFn. При равенстве побеждает запись, встретившаяся раньше во входе
// (детерминированный, но условный выбор). Записи, для которых keyFn
// возвращает ok=false (ключ отсутствует), отбрасываются: строку без
// натурального ключа невозможно снабдить суррогатным.
//
// Порядок результата — по первому появлению ключа во входных данных,
// поэтому при неизменном входе результат побайтово воспроизводим.
func ResolveLatest[T any, K comparable](records []T, keyFn func(T) (K, bool), orderFn func(candidate, current T) bool) []T {
	latest := make(map[K]T, len(records))
	order := make([]K, 0, len(records))

	for _, record := range records {
		key, ok := keyFn(record)
		if !ok {
			continue
		}

		current, seen := latest[key]
		if !seen {
			latest[key] = record
			order = append(order, key)
			continue
		}

		// Заменяем только при строгом превосходстве кандидата
		if orderFn(record, current) {
			latest[key] = record
		}
	}

	result := make([]T, 0, len(order))
	for _, key := range order {
		result = append(result, latest[key])
	}

	return result
}
