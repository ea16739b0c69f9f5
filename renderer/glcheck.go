package renderer

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

var ErrGL = errors.New("opengl error")

// GLError lists the error flags raised by an operation.
type GLError struct {
	Op    string
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = ErrorName(c)
	}
	return fmt.Sprintf("%s: %s", e.Op, strings.Join(names, ", "))
}

func (e *GLError) Unwrap() error { return ErrGL }

// a lost context can report the same flag forever
const maxErrorFlags = 16

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case 0x0000:
		return "GL_NO_ERROR"
	case 0x0500:
		return "GL_INVALID_ENUM"
	case 0x0501:
		return "GL_INVALID_VALUE"
	case 0x0502:
		return "GL_INVALID_OPERATION"
	case 0x0503:
		return "GL_STACK_OVERFLOW"
	case 0x0504:
		return "GL_STACK_UNDERFLOW"
	case 0x0505:
		return "GL_OUT_OF_MEMORY"
	case 0x0506:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case 0x0507:
		return "GL_CONTEXT_LOST"
	default:
		return fmt.Sprintf("GL_ERROR_0x%04X", code)
	}
}

// ClearErrors drains pending error flags so the next CheckErrors only sees
// errors raised after this call.
func ClearErrors() {
	for i := 0; i < maxErrorFlags; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}

// CheckErrors returns a *GLError if any error flag is set.
func CheckErrors(op string) error {
	var codes []uint32
	for i := 0; i < maxErrorFlags; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return &GLError{Op: op, Codes: codes}
}
