package dto

// APIResponse is the tagged success/failure envelope.
// Exactly one of Data and Message is set; Success is false iff Message is set.
type APIResponse[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: &data}
}

// Fail builds a failed envelope carrying message.
func Fail[T any](message string) APIResponse[T] {
	return APIResponse[T]{Success: false, Message: &message}
}

// PaginatedResponse wraps one page of a list.
type PaginatedResponse[T any] struct {
	Data    []T    `json:"data"`
	Total   uint64 `json:"total"`
	Page    uint32 `json:"page"`
	PerPage uint32 `json:"per_page"`
}

// NewPaginatedResponse builds a page. Data beyond perPage is dropped and total
// is raised to at least len(data), so len(Data) <= PerPage and Total >= len(Data).
func NewPaginatedResponse[T any](data []T, total uint64, page, perPage uint32) PaginatedResponse[T] {
	if uint64(len(data)) > uint64(perPage) {
		data = data[:perPage]
	}
	if data == nil {
		data = []T{}
	}
	if total < uint64(len(data)) {
		total = uint64(len(data))
	}

	return PaginatedResponse[T]{
		Data:    data,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
