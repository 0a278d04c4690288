package apperror

// AppError carries an HTTP status alongside a user-facing message so
// handlers can map service failures without switching on sentinel errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a status and message to an underlying error while
// keeping it reachable through errors.Is/As.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
