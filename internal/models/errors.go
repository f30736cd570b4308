package models

import "errors"

// ErrReportNotFound возвращается, когда id отчета не разрешается в хранилище
var ErrReportNotFound = errors.New("report not found")
