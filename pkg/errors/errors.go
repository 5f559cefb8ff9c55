package errors

import "errors"

// 跨层共享的哨兵错误，各 service 内部的业务错误就近定义
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrOptimisticLock 乐观锁版本冲突，调用方应重试
	ErrOptimisticLock = errors.New("数据已被其他请求修改，请重试")
)
