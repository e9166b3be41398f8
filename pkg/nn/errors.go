package nn

import "fmt"

type Shape [2]int

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s[0], s[1])
}

// ShapeMismatchError reports two operands whose dimensions cannot be combined.
type ShapeMismatchError struct {
	Op    string
	Left  Shape
	Right Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch %s vs %s", e.Op, e.Left, e.Right)
}

func shapeOf(r, c int) Shape {
	return Shape{r, c}
}
