package domain

import "errors"

var (
	ErrNotFound  = errors.New("fruit not found")
	ErrInvalidID = errors.New("invalid fruit id")
)

// Fruit is a stored record. Name and Color are nil when the field is absent
// from the document.
type Fruit struct {
	ID         string  `json:"_id" db:"id"`
	Name       *string `json:"name,omitempty" db:"name"`
	Color      *string `json:"color,omitempty" db:"color"`
	ReadyToEat bool    `json:"readyToEat" db:"ready_to_eat"`
}

// FruitInput carries the mutable fields for create and full replace.
type FruitInput struct {
	Name       *string
	Color      *string
	ReadyToEat bool
}

func (f Fruit) Input() FruitInput {
	return FruitInput{Name: f.Name, Color: f.Color, ReadyToEat: f.ReadyToEat}
}

// Str returns a pointer to s, for building inputs in code.
func Str(s string) *string { return &s }
