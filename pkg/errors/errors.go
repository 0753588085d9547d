package errors

var (
	// ErrReplaySourceNotFound is returned when the replay source file does not exist.
	ErrReplaySourceNotFound = New("replay source not found")
	// ErrRecordWrite is returned when a worker record cannot be written.
	ErrRecordWrite = New("failed to write worker record")
	// ErrInvalidWorkerCount is returned when the worker count in the environment is not a number.
	ErrInvalidWorkerCount = New("invalid worker count")
	// ErrMissingReplaySource is returned when a replay is requested without a source.
	ErrMissingReplaySource = New("missing replay source")
	// ErrAzureConfig is returned when missing values in azure blob config
	ErrAzureConfig = New("missing values in azure blob config")
	// ErrAzureUpload is returned when azure blob upload fails
	ErrAzureUpload = New("failed to upload blob to azure storage")
	// ErrNotFound is returned when a remote record is not found.
	ErrNotFound = New("Not Found")
	// ErrInvalidLogBackend is returned when the logger backend is neither zap nor logrus.
	ErrInvalidLogBackend = New("invalid log backend")
	// ErrInvalidDist is returned when the distribution mode is unknown.
	ErrInvalidDist = New("invalid distribution mode")
	// ErrTestsFailed is returned when at least one test of the session failed.
	ErrTestsFailed = New("tests failed")
	// ErrGoTestList is returned when the go toolchain fails to list tests.
	ErrGoTestList = New("failed to list go tests")
)

// Error represents a json-encoded error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// NotFoundError reports a missing replay source. It matches ErrReplaySourceNotFound
// with errors.Is and unwraps to the underlying filesystem error.
type NotFoundError struct {
	Path string
	Err  error
}

// Error gives a human-readable description of the error.
func (e *NotFoundError) Error() string {
	return ErrReplaySourceNotFound.Error() + ": " + e.Path
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrReplaySourceNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrReplaySourceNotFound
}

// ReplaySourceNotFound returns a NotFoundError for path.
func ReplaySourceNotFound(path string, err error) error {
	return &NotFoundError{Path: path, Err: err}
}
