package unblock_client

import "context"

type ClientService interface {
	Unblock(ctx context.Context, businessID, clientID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
