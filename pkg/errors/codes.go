package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeNotImplemented     ErrorCode = "COMMON_008"
)

// Scene module error codes: the external viewer host, its entity
// collections, and fixture loading.
const (
	ErrCodeSceneUnavailable   ErrorCode = "SCENE_001"
	ErrCodeEntityNotFound     ErrorCode = "SCENE_002"
	ErrCodeEntityExists       ErrorCode = "SCENE_003"
	ErrCodeFixtureInvalid     ErrorCode = "SCENE_004"
	ErrCodeFixtureUnreadable  ErrorCode = "SCENE_005"
	ErrCodeCollectionReadOnly ErrorCode = "SCENE_006"
	ErrCodeWatchFailed        ErrorCode = "SCENE_007"
)

// Highlight module error codes.  The engine core never propagates errors to
// the application layer (failures degrade to "no visual effect"); these
// codes exist for the interfaces layer, which validates requests before
// handing them to the engine.
const (
	ErrCodeHighlightModeInvalid ErrorCode = "HL_001"
	ErrCodeDiffTypeInvalid      ErrorCode = "HL_002"
	ErrCodeCloneFailed          ErrorCode = "HL_003"
)

// Config module error codes.
const (
	ErrCodeConfigUnreadable ErrorCode = "CFG_001"
	ErrCodeConfigInvalid    ErrorCode = "CFG_002"
)

// Short aliases used at call sites throughout the codebase.
const (
	CodeUnknown          = ErrorCode("")
	CodeOK               = ErrorCode("OK")
	CodeInternal         = ErrCodeInternal
	CodeInvalidParam     = ErrCodeBadRequest
	CodeNotFound         = ErrCodeNotFound
	CodeConflict         = ErrCodeConflict
	CodeNotImplemented   = ErrCodeNotImplemented
	CodeSceneUnavailable = ErrCodeSceneUnavailable
	CodeEntityNotFound   = ErrCodeEntityNotFound
	CodeFixtureInvalid   = ErrCodeFixtureInvalid
	CodeCloneFailed      = ErrCodeCloneFailed
	CodeConfigInvalid    = ErrCodeConfigInvalid
)

// errorCodeHTTPStatus maps error codes to the HTTP status the interfaces
// layer should answer with.  Codes absent from the map default to 500.
var errorCodeHTTPStatus = map[ErrorCode]int{
	CodeOK:                      http.StatusOK,
	ErrCodeInternal:             http.StatusInternalServerError,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeConflict:             http.StatusConflict,
	ErrCodeServiceUnavailable:   http.StatusServiceUnavailable,
	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeSerialization:        http.StatusBadRequest,
	ErrCodeNotImplemented:       http.StatusNotImplemented,
	ErrCodeSceneUnavailable:     http.StatusServiceUnavailable,
	ErrCodeEntityNotFound:       http.StatusNotFound,
	ErrCodeEntityExists:         http.StatusConflict,
	ErrCodeFixtureInvalid:       http.StatusUnprocessableEntity,
	ErrCodeFixtureUnreadable:    http.StatusInternalServerError,
	ErrCodeCollectionReadOnly:   http.StatusConflict,
	ErrCodeWatchFailed:          http.StatusInternalServerError,
	ErrCodeHighlightModeInvalid: http.StatusBadRequest,
	ErrCodeDiffTypeInvalid:      http.StatusBadRequest,
	ErrCodeCloneFailed:          http.StatusUnprocessableEntity,
	ErrCodeConfigUnreadable:     http.StatusInternalServerError,
	ErrCodeConfigInvalid:        http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ModuleForCode returns the module segment of a code ("COMMON", "SCENE",
// "HL", "CFG"), or "UNKNOWN" when the code does not follow the MODULE_NNN
// convention.
func ModuleForCode(code ErrorCode) string {
	s := string(code)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return "UNKNOWN"
}
