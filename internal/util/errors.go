package util

import "errors"

// 注册
var (
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrWeakSecret         = errors.New("generated code rejected as credential secret")
	ErrRegistrationFailed = errors.New("registration failed")
)

// 登录
var (
	ErrCodeNotFound        = errors.New("code not found")
	ErrInvalidCredential   = errors.New("invalid credentials")
	ErrNotAuthorized       = errors.New("no admin permission")
	ErrMalformedIdentifier = errors.New("malformed identifier")
)

// 业务
var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUnknownTask      = errors.New("unknown task id")
	ErrUnknownSubtask   = errors.New("unknown subtask index")
	ErrInvalidRating    = errors.New("rating value out of range")
	ErrAlreadyRated     = errors.New("task already rated")
	ErrInvalidComment   = errors.New("comment text invalid")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrPDFNotFound      = errors.New("pdf not found")
)

// 外部依赖
var (
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
