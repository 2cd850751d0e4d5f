package beers

import "math"

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 25
	MaxPageSize       = 1000
)

// PageRequest es la página pedida, siempre normalizada.
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest aplica defaults: número negativo => 0, tamaño menor a 1 => 25.
// Un tamaño mayor a MaxPageSize se recorta a MaxPageSize.
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = DefaultPageNumber
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Number: number, Size: size}
}

// Offset es la cantidad de filas a saltear en la consulta.
// Satura en math.MaxInt en vez de desbordar a negativo.
func (page PageRequest) Offset() int {
	if page.Size > 0 && page.Number > math.MaxInt/page.Size {
		return math.MaxInt
	}
	return page.Number * page.Size
}

// Page es un tramo del resultado total más metadata para paginar del lado cliente.
type Page struct {
	Content          []Beer `json:"content"`
	Number           int    `json:"number"`
	Size             int    `json:"size"`
	TotalElements    int    `json:"totalElements"`
	TotalPages       int    `json:"totalPages"`
	NumberOfElements int    `json:"numberOfElements"`
	First            bool   `json:"first"`
	Last             bool   `json:"last"`
}

// NewPage arma el resultado. Content nunca es nil para que el JSON sea [] y no null.
func NewPage(content []Beer, request PageRequest, total int) Page {
	if content == nil {
		content = []Beer{}
	}

	totalPages := 0
	if request.Size > 0 {
		totalPages = (total + request.Size - 1) / request.Size
	}

	return Page{
		Content:          content,
		Number:           request.Number,
		Size:             request.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            request.Number == 0,
		Last:             request.Number >= totalPages-1,
	}
}
