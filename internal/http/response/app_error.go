package response

// AppError 携带业务状态码的 handler 错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ClientError 是否为客户端错误（4xx）
func (e *AppError) ClientError() bool {
	return e != nil && e.Code >= 400 && e.Code < 500
}
