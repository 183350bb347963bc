package custom_errors

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrDatabaseQuery    = errors.New("database query error")
	ErrDatabaseScan     = errors.New("database scan error")
)
