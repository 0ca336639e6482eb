package errors

import "errors"

// ErrConflict 唯一约束冲突：登录名已被占用
var ErrConflict = errors.New("唯一约束冲突")
