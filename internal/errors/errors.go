// Package errors provides standardized error handling for FileScout.
// It defines the error kinds the browser can surface in its status line,
// typed errors carrying the path or parameter involved, and helpers for
// classifying errors returned by the operating system.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
	// Join returns an error that wraps the given errors
	Join = errors.Join
)

// Common error constants for frequently occurring errors
var (
	ErrNotSelected   = NewFileError("no entry selected", "", NotSelected, nil)
	ErrNoKey         = NewCryptoError("no encryption key configured", "", InvalidKey, nil)
	ErrDecryptFailed = NewCryptoError("decryption failed", "", DecryptFailed, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	AlreadyExists
	IsDirectory
	InvalidPath
	FileOperationFailed
	NotSelected
	InvalidOperation
	// Crypto error kinds
	EncryptFailed
	DecryptFailed
	InvalidKey
	// Job error kinds
	NotifyFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// String returns a short name for the kind, used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "not_found"
	case FileAccessDenied:
		return "access_denied"
	case AlreadyExists:
		return "already_exists"
	case IsDirectory:
		return "is_directory"
	case InvalidPath:
		return "invalid_path"
	case FileOperationFailed:
		return "file_operation"
	case NotSelected:
		return "not_selected"
	case InvalidOperation:
		return "invalid_operation"
	case EncryptFailed:
		return "encrypt_failed"
	case DecryptFailed:
		return "decrypt_failed"
	case InvalidKey:
		return "invalid_key"
	case NotifyFailed:
		return "notify_failed"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches another application error of the same kind and message, so the
// sentinel values above can be used with errors.Is.
func (e *ApplicationError) Is(target error) bool {
	var other interface {
		Kind() ErrorKind
		message() string
	}
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind() == e.kind && other.message() == e.msg
}

func (e *ApplicationError) message() string {
	return e.msg
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// CryptoError represents failures of the encrypt/decrypt transforms
type CryptoError struct {
	ApplicationError
	path string
}

// NewCryptoError creates a new crypto error
func NewCryptoError(msg string, path string, kind ErrorKind, err error) *CryptoError {
	return &CryptoError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the crypto error message
func (e *CryptoError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file the transform was working on
func (e *CryptoError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates an error of the given kind
func NewKind(kind ErrorKind, msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

// KindOf returns the kind of the first kinded error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// FromOS converts an error returned by the os package into a FileError whose
// kind reflects the underlying cause.
func FromOS(op string, path string, err error) error {
	if err == nil {
		return nil
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return err
	}

	kind := FileOperationFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = FileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = FileAccessDenied
	case errors.Is(err, fs.ErrExist):
		kind = AlreadyExists
	case errors.Is(err, syscall.EISDIR):
		kind = IsDirectory
	}

	// Unwrap *fs.PathError so the path is not printed twice.
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return NewFileError(op, path, kind, err)
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return KindOf(err) == FileNotFound
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	return KindOf(err) == FileAccessDenied
}

// IsAlreadyExists checks if the error reports a name collision
func IsAlreadyExists(err error) bool {
	return KindOf(err) == AlreadyExists
}

// IsNotSelected checks if the error reports a missing selection
func IsNotSelected(err error) bool {
	return KindOf(err) == NotSelected
}

// IsInvalidOperation checks if the error reports an operation the selection does not allow
func IsInvalidOperation(err error) bool {
	return KindOf(err) == InvalidOperation
}

// IsDecryptFailed checks if the error is an authentication or format failure on decrypt
func IsDecryptFailed(err error) bool {
	return KindOf(err) == DecryptFailed
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
